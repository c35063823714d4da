package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	_, _ = w.RegisterNonTerminalSymbol("expr")
	_, _ = w.RegisterNonTerminalSymbol("term")
	_, _ = w.RegisterNonTerminalSymbol("factor")
	_, _ = w.RegisterTerminalSymbol("id")
	_, _ = w.RegisterTerminalSymbol("add")
	_, _ = w.RegisterTerminalSymbol("mul")
	_, _ = w.RegisterTerminalSymbol("l_paren")
	_, _ = w.RegisterTerminalSymbol("r_paren")

	nonTermTexts := []string{
		"", // Nil
		"expr",
		"term",
		"factor",
	}

	termTexts := []string{
		"",      // Nil
		NameEOF, // EOF
		"id",
		"add",
		"mul",
		"l_paren",
		"r_paren",
	}

	tests := []struct {
		text string
		kind Kind
	}{
		{text: "expr", kind: KindNonTerminal},
		{text: "term", kind: KindNonTerminal},
		{text: "factor", kind: KindNonTerminal},
		{text: "id", kind: KindTerminal},
		{text: "add", kind: KindTerminal},
		{text: "mul", kind: KindTerminal},
		{text: "l_paren", kind: KindTerminal},
		{text: "r_paren", kind: KindTerminal},
		{text: NameEOF, kind: KindEOF},
		{text: NameEpsilon, kind: KindEpsilon},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := tab.Reader()
			sym, ok := r.ToSymbol(tt.text)
			if !ok {
				t.Fatalf("symbol was not found")
			}
			testSymbolProperty(t, sym, tt.kind)
			text, ok := r.ToText(sym)
			if !ok {
				t.Fatalf("text was not found")
			}
			if text != tt.text {
				t.Fatalf("unexpected text representation; want: %v, got: %v", tt.text, text)
			}
		})
	}

	t.Run("EOF", func(t *testing.T) {
		testSymbolProperty(t, SymbolEOF, KindEOF)
	})

	t.Run("epsilon", func(t *testing.T) {
		testSymbolProperty(t, SymbolEpsilon, KindEpsilon)
	})

	t.Run("nil", func(t *testing.T) {
		testSymbolProperty(t, SymbolNil, KindNil)
	})

	t.Run("texts of non-terminals", func(t *testing.T) {
		r := tab.Reader()
		ts, err := r.NonTerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != len(nonTermTexts) {
			t.Fatalf("unexpected non-terminal count; want: %v (%#v), got: %v (%#v)", len(nonTermTexts), nonTermTexts, len(ts), ts)
		}
		for i, text := range ts {
			if text != nonTermTexts[i] {
				t.Fatalf("unexpected non-terminal; want: %v, got: %v", nonTermTexts[i], text)
			}
		}
	})

	t.Run("texts of terminals", func(t *testing.T) {
		r := tab.Reader()
		ts, err := r.TerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != len(termTexts) {
			t.Fatalf("unexpected terminal count; want: %v (%#v), got: %v (%#v)", len(termTexts), termTexts, len(ts), ts)
		}
		for i, text := range ts {
			if text != termTexts[i] {
				t.Fatalf("unexpected terminal; want: %v, got: %v", termTexts[i], text)
			}
		}
	})

	t.Run("terminal symbols exclude epsilon", func(t *testing.T) {
		syms := tab.Reader().TerminalSymbols()
		if len(syms) != len(termTexts)-1 {
			t.Fatalf("unexpected terminal count; want: %v, got: %v", len(termTexts)-1, len(syms))
		}
		if syms[0] != SymbolEOF {
			t.Fatalf("the first terminal must be EOF; got: %v", syms[0])
		}
		for _, sym := range syms {
			if sym.IsEpsilon() {
				t.Fatalf("epsilon must not be listed as a terminal")
			}
		}
	})
}

func TestSymbolTableWriter_KindMismatch(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	if _, err := w.RegisterTerminalSymbol("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.RegisterNonTerminalSymbol("a"); err == nil {
		t.Fatal("a terminal name must not be registered as a non-terminal")
	}
	if _, err := w.RegisterTerminalSymbol(NameEpsilon); err == nil {
		t.Fatal("the epsilon name must not be registered as a terminal")
	}
	if _, err := w.RegisterNonTerminalSymbol(NameEOF); err == nil {
		t.Fatal("the EOF name must not be registered as a non-terminal")
	}
}

func testSymbolProperty(t *testing.T, sym Symbol, kind Kind) {
	t.Helper()

	if v := sym.Kind(); v != kind {
		t.Fatalf("unexpected kind; want: %v, got: %v", kind, v)
	}
	if v := sym.IsNil(); v != (kind == KindNil) {
		t.Fatalf("isNil property is mismatched; want: %v, got: %v", kind == KindNil, v)
	}
	if v := sym.IsNonTerminal(); v != (kind == KindNonTerminal) {
		t.Fatalf("isNonTerminal property is mismatched; want: %v, got: %v", kind == KindNonTerminal, v)
	}
	isTerminal := kind == KindTerminal || kind == KindEOF || kind == KindEpsilon
	if v := sym.IsTerminal(); v != isTerminal {
		t.Fatalf("isTerminal property is mismatched; want: %v, got: %v", isTerminal, v)
	}
	if v := sym.IsEOF(); v != (kind == KindEOF) {
		t.Fatalf("isEOF property is mismatched; want: %v, got: %v", kind == KindEOF, v)
	}
	if v := sym.IsEpsilon(); v != (kind == KindEpsilon) {
		t.Fatalf("isEpsilon property is mismatched; want: %v, got: %v", kind == KindEpsilon, v)
	}
}
