package symbol

import (
	"fmt"
	"sort"
)

// Kind is the variant of a symbol. Callers switching on a symbol should cover every kind.
type Kind int

const (
	KindNil Kind = iota
	KindNonTerminal
	KindTerminal
	KindEpsilon
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindNonTerminal:
		return "non-terminal"
	case KindTerminal:
		return "terminal"
	case KindEpsilon:
		return "epsilon"
	case KindEOF:
		return "eof"
	default:
		return "nil"
	}
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol is a tagged symbol value. The upper two bits hold the variant and the rest holds
// a number that is dense within each of the terminal and the non-terminal spaces.
type Symbol uint16

func (s Symbol) String() string {
	var prefix string
	switch s.Kind() {
	case KindNonTerminal:
		prefix = "n"
	case KindTerminal:
		prefix = "t"
	case KindEpsilon:
		return "ε"
	case KindEOF:
		prefix = "e"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, s.Num())
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart = uint16(0x4000) // 0100 0000 0000 0000
	maskOrdinary    = uint16(0x0000) // 0000 0000 0000 0000
	maskReserved    = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumEOF     = uint16(0x0001) // 0000 0000 0000 0001
	symbolNumEpsilon = uint16(0x3fff) // 0011 1111 1111 1111

	SymbolNil     = Symbol(0)                                           // 0000 0000 0000 0000
	SymbolEOF     = Symbol(maskTerminal | maskReserved | symbolNumEOF)     // 1100 0000 0000 0001
	SymbolEpsilon = Symbol(maskTerminal | maskReserved | symbolNumEpsilon) // 1111 1111 1111 1111

	// NameEOF and NameEpsilon are reserved; a grammar cannot declare symbols with these names.
	NameEOF     = "$"
	NameEpsilon = "EPSILON"

	nonTerminalNumMin = SymbolNum(1)
	terminalNumMin    = SymbolNum(2)           // The number 1 is used by the EOF symbol.
	symbolNumMax      = SymbolNum(0xffff) >> 2 // 0011 1111 1111 1111
)

func newSymbol(kind Kind, num SymbolNum) (Symbol, error) {
	// The largest number is taken by the epsilon symbol.
	if num >= symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax-1, num)
	}

	switch kind {
	case KindNonTerminal:
		return Symbol(maskNonTerminal | maskOrdinary | uint16(num)), nil
	case KindTerminal:
		return Symbol(maskTerminal | maskOrdinary | uint16(num)), nil
	}
	return SymbolNil, fmt.Errorf("cannot allocate a symbol of kind %v", kind)
}

func (s Symbol) Num() SymbolNum {
	return SymbolNum(uint16(s) & maskNumberPart)
}

func (s Symbol) Kind() Kind {
	if s.Num() == 0 {
		return KindNil
	}
	if uint16(s)&maskKindPart == maskNonTerminal {
		return KindNonTerminal
	}
	if uint16(s)&maskSubKindPart == maskOrdinary {
		return KindTerminal
	}
	if s == SymbolEpsilon {
		return KindEpsilon
	}
	return KindEOF
}

func (s Symbol) IsNil() bool {
	return s.Kind() == KindNil
}

// IsTerminal reports whether the symbol is a leaf symbol. The epsilon and the EOF symbols are
// leaves too.
func (s Symbol) IsTerminal() bool {
	switch s.Kind() {
	case KindTerminal, KindEpsilon, KindEOF:
		return true
	}
	return false
}

func (s Symbol) IsNonTerminal() bool {
	return s.Kind() == KindNonTerminal
}

func (s Symbol) IsEOF() bool {
	return s.Kind() == KindEOF
}

func (s Symbol) IsEpsilon() bool {
	return s.Kind() == KindEpsilon
}

type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   SymbolNum
	termNum      SymbolNum
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			NameEOF:     SymbolEOF,
			NameEpsilon: SymbolEpsilon,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF:     NameEOF,
			SymbolEpsilon: NameEpsilon,
		},
		termTexts: []string{
			"",      // Nil
			NameEOF, // EOF
		},
		nonTermTexts: []string{
			"", // Nil
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a %v", text, sym.Kind())
		}
		return sym, nil
	}
	sym, err := newSymbol(KindNonTerminal, w.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nonTermNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.nonTermTexts = append(w.nonTermTexts, text)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if sym.Kind() != KindTerminal {
			return SymbolNil, fmt.Errorf("%v is already registered as a %v", text, sym.Kind())
		}
		return sym, nil
	}
	sym, err := newSymbol(KindTerminal, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.termTexts = append(w.termTexts, text)
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

// TerminalSymbols returns the EOF symbol and all the terminal symbols ordered by number.
// The epsilon symbol is not included because it never labels a table column.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int()-1)
	for sym := range r.sym2Text {
		switch sym.Kind() {
		case KindTerminal, KindEOF:
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// TerminalTexts returns the terminal names indexed by the symbol number. Index 0 is
// the nil symbol and index 1 is the EOF symbol.
func (r *SymbolTableReader) TerminalTexts() ([]string, error) {
	if r.termNum == terminalNumMin {
		return nil, fmt.Errorf("symbol table has no terminals")
	}
	return r.termTexts, nil
}

func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.nonTermNum.Int()-nonTerminalNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// NonTerminalTexts returns the non-terminal names indexed by the symbol number. Index 0 is
// the nil symbol.
func (r *SymbolTableReader) NonTerminalTexts() ([]string, error) {
	if r.nonTermNum == nonTerminalNumMin {
		return nil, fmt.Errorf("symbol table has no non-terminals")
	}
	return r.nonTermTexts, nil
}

func (r *SymbolTableReader) TerminalCount() int {
	return r.termNum.Int()
}

func (r *SymbolTableReader) NonTerminalCount() int {
	return r.nonTermNum.Int()
}
