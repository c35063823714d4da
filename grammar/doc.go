/*
Package grammar assembles context-free grammars and builds LL(1) predictive parsing tables.

A grammar is declared through a GrammarBuilder, either by hand or from the AST of a grammar file:

	b := &grammar.GrammarBuilder{
		Name:         "balanced",
		Terminals:    []string{"a", "b"},
		NonTerminals: []string{"S"},
		Start:        "S",
	}
	b.AddProduction("S", "a", "S", "b")
	b.AddProduction("S", "EPSILON")
	g, err := b.Build()

FIRST and FOLLOW sets are computed once per grammar on first demand. BuildParsingTable fails
with a *ConflictError when a cell of the table would receive two productions.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("predict.grammar")
}
