package driver

import (
	spec "github.com/nihei9/predict/spec/grammar"
)

// Grammar is the read-only view of a predictive parsing table the parser runs on. Terminals and
// non-terminals are addressed by number, and RHS symbols are encoded in the same way as
// spec.SyntacticSpec.RHSSymbols.
type Grammar interface {
	// StartSymbol returns the number of the start symbol.
	StartSymbol() int

	// EOF returns the terminal number of the end-of-input marker.
	EOF() int

	// Lookup returns the production predicted in a cell, or 0 when the cell is empty.
	Lookup(nonTerm int, term int) (int, error)

	// RHS returns the encoded RHS of a production.
	RHS(prod int) []int

	TerminalCount() int

	// Terminal returns the name of a terminal.
	Terminal(term int) string

	// NonTerminal returns the name of a non-terminal.
	NonTerminal(nonTerm int) string

	// TerminalNum returns the number of a terminal name.
	TerminalNum(name string) (int, bool)
}

type grammarImpl struct {
	g         *spec.CompiledGrammar
	name2Term map[string]int
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	name2Term := map[string]int{}
	for num, name := range g.Syntactic.Terminals {
		if name == "" {
			continue
		}
		name2Term[name] = num
	}
	return &grammarImpl{
		g:         g,
		name2Term: name2Term,
	}
}

func (g *grammarImpl) StartSymbol() int {
	return g.g.Syntactic.StartSymbol
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) Lookup(nonTerm int, term int) (int, error) {
	return g.g.Syntactic.Table.Lookup(nonTerm, term)
}

func (g *grammarImpl) RHS(prod int) []int {
	return g.g.Syntactic.RHSSymbols[prod]
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) Terminal(term int) string {
	return g.g.Syntactic.Terminals[term]
}

func (g *grammarImpl) NonTerminal(nonTerm int) string {
	return g.g.Syntactic.NonTerminals[nonTerm]
}

func (g *grammarImpl) TerminalNum(name string) (int, bool) {
	num, ok := g.name2Term[name]
	return num, ok
}
