package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/predict/grammar/symbol"
	"github.com/nihei9/predict/spec/grammar/parser"
)

func parseGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrammarBuilderFromAST("test", ast).Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, g *Grammar) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := g.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

func testSymbols(t *testing.T, g *Grammar, actual []symbol.Symbol, expected []string) {
	t.Helper()

	texts := g.Texts(actual)
	if len(texts) != len(expected) {
		t.Fatalf("unexpected symbols; want: %v, got: %v", expected, texts)
	}
	for i, text := range texts {
		if text != expected[i] {
			t.Fatalf("unexpected symbols; want: %v, got: %v", expected, texts)
		}
	}
}

const balancedSrc = `
%Tokens a b
%Non-terminals S
%Start S
%Rules
S : a S b | EPSILON
`

const exprSrc = `
%Tokens id + * ( )
%Non-terminals E E' T T' F
%Start E
%Rules
E : T E'
E' : + T E' | EPSILON
T : F T'
T' : * F T' | EPSILON
F : ( E ) | id
`
