package grammar

import (
	"errors"
	"testing"

	"github.com/nihei9/predict/compressor"
)

func TestCompile(t *testing.T) {
	g := parseGrammar(t, exprSrc)
	tab, err := g.BuildParsingTable()
	if err != nil {
		t.Fatal(err)
	}
	entries := tab.Entries()

	var fingerprint string
	for _, m := range []compressor.Method{compressor.MethodNone, compressor.MethodUniqueEntries, compressor.MethodRowDisplacement} {
		t.Run(m.String(), func(t *testing.T) {
			cg, report, err := Compile(g, Compression(m))
			if err != nil {
				t.Fatal(err)
			}
			if report != nil {
				t.Fatalf("a report must be nil unless reporting is enabled")
			}
			if fingerprint == "" {
				fingerprint = cg.Fingerprint
			} else if cg.Fingerprint != fingerprint {
				t.Fatalf("a fingerprint must not depend on compression; want: %v, got: %v", fingerprint, cg.Fingerprint)
			}

			s := cg.Syntactic
			if s.Table.Compression != m {
				t.Fatalf("unexpected compression; want: %v, got: %v", m, s.Table.Compression)
			}
			for row := 0; row < s.NonTerminalCount; row++ {
				for col := 0; col < s.TerminalCount; col++ {
					v, err := s.Table.Lookup(row, col)
					if err != nil {
						t.Fatal(err)
					}
					if v != entries[row*s.TerminalCount+col] {
						t.Fatalf("unexpected entry [%v, %v]; want: %v, got: %v", row, col, entries[row*s.TerminalCount+col], v)
					}
				}
			}
			if s.Terminals[s.EOFSymbol] != "$" {
				t.Fatalf("unexpected EOF symbol; got: %v", s.Terminals[s.EOFSymbol])
			}
			if s.NonTerminals[s.StartSymbol] != "E" {
				t.Fatalf("unexpected start symbol; got: %v", s.NonTerminals[s.StartSymbol])
			}

			grid, err := cg.Grid()
			if err != nil {
				t.Fatal(err)
			}
			if !grid.Equal(tab.Grid()) {
				t.Fatalf("a grid of a compiled grammar must equal the grid of the parsing table")
			}
		})
	}
}

func TestCompile_RHSEncoding(t *testing.T) {
	g := parseGrammar(t, balancedSrc)
	cg, _, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}

	s := cg.Syntactic
	genSym := newTestSymbolGenerator(t, g)
	a := genSym("a").Num().Int()
	b := genSym("b").Num().Int()
	S := genSym("S").Num().Int()
	expected := [][]int{
		nil,
		{a, S * -1, b},
		{0},
	}
	if len(s.RHSSymbols) != len(expected) {
		t.Fatalf("unexpected RHS count; want: %v, got: %v", len(expected), len(s.RHSSymbols))
	}
	for i := 1; i < len(expected); i++ {
		if len(s.RHSSymbols[i]) != len(expected[i]) {
			t.Fatalf("unexpected RHS of production %v; want: %v, got: %v", i, expected[i], s.RHSSymbols[i])
		}
		for j, v := range s.RHSSymbols[i] {
			if v != expected[i][j] {
				t.Fatalf("unexpected RHS of production %v; want: %v, got: %v", i, expected[i], s.RHSSymbols[i])
			}
		}
		if s.LHSSymbols[i] != S {
			t.Fatalf("unexpected LHS of production %v; want: %v, got: %v", i, S, s.LHSSymbols[i])
		}
	}
}

func TestCompile_Report(t *testing.T) {
	g := parseGrammar(t, balancedSrc)
	_, report, err := Compile(g, EnableReporting())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", report.Conflicts)
	}
	if len(report.NonTerminals) != 1 {
		t.Fatalf("unexpected non-terminal count; want: 1, got: %v", len(report.NonTerminals))
	}
	nt := report.NonTerminals[0]
	if nt.Name != "S" || !nt.Nullable || len(nt.First) != 1 || len(nt.Follow) != 2 {
		t.Fatalf("unexpected non-terminal: %+v", nt)
	}
	if len(report.Productions) != 2 {
		t.Fatalf("unexpected production count; want: 2, got: %v", len(report.Productions))
	}
	// S -> EPSILON is predicted by b and $.
	if len(report.Productions[1].Predict) != 2 {
		t.Fatalf("unexpected predict set: %v", report.Productions[1].Predict)
	}
}

func TestCompile_ConflictReport(t *testing.T) {
	src := `
%Tokens a
%Non-terminals A
%Start A
%Rules
A : a | a
`
	g := parseGrammar(t, src)
	cg, report, err := Compile(g, EnableReporting())
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("unexpected error; want: %T, got: %#v", cErr, err)
	}
	if cg != nil {
		t.Fatalf("an artifact must not be returned")
	}
	if report == nil || len(report.Conflicts) != 1 {
		t.Fatalf("a report must list the conflict; got: %+v", report)
	}
	c := report.Conflicts[0]
	if c.Production1 != 1 || c.Production2 != 2 {
		t.Fatalf("unexpected conflict: %+v", c)
	}
}
