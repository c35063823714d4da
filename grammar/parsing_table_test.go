package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammar_BuildParsingTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.grammar")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		cells   map[string]map[string]string
	}{
		{
			caption: "a self-embedding grammar with an empty alternative",
			src:     balancedSrc,
			cells: map[string]map[string]string{
				"S": {
					"a": "S -> a S b",
					"b": "S -> EPSILON",
					"$": "S -> EPSILON",
				},
			},
		},
		{
			caption: "a non-left-recursive expression grammar",
			src:     exprSrc,
			cells: map[string]map[string]string{
				"E": {
					"id": "E -> T E'",
					"(":  "E -> T E'",
				},
				"E'": {
					"+": "E' -> + T E'",
					")": "E' -> EPSILON",
					"$": "E' -> EPSILON",
				},
				"T": {
					"id": "T -> F T'",
					"(":  "T -> F T'",
				},
				"T'": {
					"+": "T' -> EPSILON",
					"*": "T' -> * F T'",
					")": "T' -> EPSILON",
					"$": "T' -> EPSILON",
				},
				"F": {
					"id": "F -> id",
					"(":  "F -> ( E )",
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := parseGrammar(t, tt.src)
			tab, err := g.BuildParsingTable()
			if err != nil {
				t.Fatal(err)
			}

			grid := tab.Grid()
			if grid.Terminals[len(grid.Terminals)-1] != "$" {
				t.Fatalf("the last column must be $; got: %v", grid.Terminals)
			}
			for _, nonTerm := range grid.NonTerminals {
				for _, term := range grid.Terminals {
					cell, ok := grid.Cell(nonTerm, term)
					if !ok {
						t.Fatalf("a cell was not found: [%v, %v]", nonTerm, term)
					}
					expected := tt.cells[nonTerm][term]
					if cell != expected {
						t.Fatalf("unexpected cell [%v, %v]; want: %q, got: %q", nonTerm, term, expected, cell)
					}
				}
			}
		})
	}
}

func TestGrammar_BuildParsingTable_Conflict(t *testing.T) {
	tests := []struct {
		caption   string
		src       string
		conflicts []string
	}{
		{
			caption: "a duplicated alternative conflicts with itself",
			src: `
%Tokens a
%Non-terminals A
%Start A
%Rules
A : a | a
`,
			conflicts: []string{
				"(A, a): A -> a | A -> a",
			},
		},
		{
			caption: "a left-recursive grammar is not LL(1)",
			src: `
%Tokens id +
%Non-terminals E
%Start E
%Rules
E : E + id | id
`,
			conflicts: []string{
				"(E, id): E -> E + id | E -> id",
			},
		},
		{
			caption: "FIRST of one alternative overlaps FOLLOW of an empty one",
			src: `
%Tokens a
%Non-terminals S A
%Start S
%Rules
S : A a
A : a | EPSILON
`,
			conflicts: []string{
				"(A, a): A -> a | A -> EPSILON",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := parseGrammar(t, tt.src)
			tab, err := g.BuildParsingTable()
			if tab != nil {
				t.Fatalf("a parsing table must not be returned")
			}
			var cErr *ConflictError
			if !errors.As(err, &cErr) {
				t.Fatalf("unexpected error; want: %T, got: %#v", cErr, err)
			}
			if len(cErr.Conflicts) != len(tt.conflicts) {
				t.Fatalf("unexpected conflicts; want: %v, got: %v", tt.conflicts, cErr.Conflicts)
			}
			for i, c := range cErr.Conflicts {
				if c.String() != tt.conflicts[i] {
					t.Fatalf("unexpected conflict; want: %v, got: %v", tt.conflicts[i], c)
				}
			}
			if !strings.HasPrefix(err.Error(), "the grammar is not LL(1)") {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
}

func TestConflictError_Error(t *testing.T) {
	g := parseGrammar(t, `
%Tokens a b
%Non-terminals S
%Start S
%Rules
S : a | a b | a | b
`)
	_, err := g.BuildParsingTable()
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("unexpected error; want: %T, got: %#v", cErr, err)
	}
	expectedConflicts := []string{
		"(S, a): S -> a | S -> a b",
		"(S, a): S -> a | S -> a",
	}
	if len(cErr.Conflicts) != len(expectedConflicts) {
		t.Fatalf("unexpected conflicts; want: %v, got: %v", expectedConflicts, cErr.Conflicts)
	}
	for i, c := range cErr.Conflicts {
		if c.String() != expectedConflicts[i] {
			t.Fatalf("unexpected conflict; want: %v, got: %v", expectedConflicts[i], c)
		}
	}
	expected := "the grammar is not LL(1); 2 conflicts in 1 cells\n    (S, a): S -> a | S -> a b | S -> a"
	if err.Error() != expected {
		t.Fatalf("unexpected message;\nwant: %q\ngot:  %q", expected, err.Error())
	}
}

func TestParsingTable_Lookup(t *testing.T) {
	g := parseGrammar(t, exprSrc)
	genSym := newTestSymbolGenerator(t, g)
	tab, err := g.BuildParsingTable()
	if err != nil {
		t.Fatal(err)
	}

	num, ok := tab.Lookup(genSym("F"), genSym("id"))
	if !ok {
		t.Fatalf("[F, id] must not be empty")
	}
	if prod, _ := tab.Production(num); prod != "F -> id" {
		t.Fatalf("unexpected production; want: F -> id, got: %v", prod)
	}
	if _, ok := tab.Lookup(genSym("E"), genSym(")")); ok {
		t.Fatalf("[E, )] must be empty")
	}
	if _, ok := tab.Lookup(genSym("id"), genSym("E")); ok {
		t.Fatalf("symbols of the wrong kinds must not address a cell")
	}
	if _, ok := tab.Production(0); ok {
		t.Fatalf("production 0 must not exist")
	}
}

func TestParsingTable_Deterministic(t *testing.T) {
	var prev *ParsingTable
	for i := 0; i < 5; i++ {
		tab, err := parseGrammar(t, exprSrc).BuildParsingTable()
		if err != nil {
			t.Fatal(err)
		}
		if prev != nil {
			if !tab.Grid().Equal(prev.Grid()) {
				t.Fatalf("tables built from the same grammar differ")
			}
			a, b := tab.Entries(), prev.Entries()
			for j := range a {
				if a[j] != b[j] {
					t.Fatalf("tables built from the same grammar differ at %v", j)
				}
			}
		}
		prev = tab
	}
}
