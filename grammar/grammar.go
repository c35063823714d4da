package grammar

import (
	"errors"
	"fmt"
	"sync"

	verr "github.com/nihei9/predict/error"
	"github.com/nihei9/predict/grammar/symbol"
	"github.com/nihei9/predict/spec/grammar/parser"
)

// ErrFollowOfTerminal is returned when FOLLOW is requested for a terminal, the EOF or
// the epsilon symbol. FOLLOW is defined for non-terminals only.
var ErrFollowOfTerminal = errors.New("FOLLOW is defined only for non-terminals")

type Grammar struct {
	name          string
	symbolTable   *symbol.SymbolTable
	productionSet *productionSet
	startSymbol   symbol.Symbol

	// terminals and nonTerminals keep the declaration order.
	terminals    []symbol.Symbol
	nonTerminals []symbol.Symbol

	analysisOnce sync.Once
	first        *firstSet
	follow       *followSet
	analysisErr  error
}

type productionDecl struct {
	lhs    string
	rhs    []string
	pos    parser.Position
	rhsPos []parser.Position
}

// GrammarBuilder collects the declarations of a grammar. Build validates all of them at once
// and reports every problem it finds as a verr.SpecErrors.
type GrammarBuilder struct {
	Name         string
	Terminals    []string
	NonTerminals []string
	Start        string

	termPos    []parser.Position
	nonTermPos []parser.Position
	startPos   parser.Position
	prods      []*productionDecl
	errs       verr.SpecErrors
}

func NewGrammarBuilderFromAST(name string, root *parser.RootNode) *GrammarBuilder {
	b := &GrammarBuilder{
		Name: name,
	}
	for _, t := range root.Terminals {
		b.Terminals = append(b.Terminals, t.Name)
		b.termPos = append(b.termPos, t.Pos)
	}
	for _, n := range root.NonTerminals {
		b.NonTerminals = append(b.NonTerminals, n.Name)
		b.nonTermPos = append(b.nonTermPos, n.Pos)
	}
	if root.Start != nil {
		b.Start = root.Start.Name
		b.startPos = root.Start.Pos
	}
	for _, prod := range root.Productions {
		for _, alt := range prod.RHS {
			decl := &productionDecl{
				lhs: prod.LHS.Name,
				pos: prod.LHS.Pos,
			}
			for _, elem := range alt.Elements {
				decl.rhs = append(decl.rhs, elem.Name)
				decl.rhsPos = append(decl.rhsPos, elem.Pos)
			}
			b.prods = append(b.prods, decl)
		}
	}
	return b
}

// AddProduction appends an alternative of a non-terminal. An empty RHS and an RHS consisting of
// the epsilon symbol both derive the empty string.
func (b *GrammarBuilder) AddProduction(lhs string, rhs ...string) {
	b.prods = append(b.prods, &productionDecl{
		lhs: lhs,
		rhs: append([]string{}, rhs...),
	})
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	b.errs = nil

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	r := symTab.Reader()

	if len(b.Terminals) == 0 {
		b.addError(semErrNoTerminal, "", parser.Position{})
	}
	if len(b.NonTerminals) == 0 {
		b.addError(semErrNoNonTerminal, "", parser.Position{})
	}
	if b.Start == "" {
		b.addError(semErrNoStartSymbol, "", parser.Position{})
	}

	declared := map[string]struct{}{}
	var terms []symbol.Symbol
	for i, name := range b.Terminals {
		pos := positionAt(b.termPos, i)
		if !b.checkDeclaredName(declared, name, pos) {
			continue
		}
		sym, err := w.RegisterTerminalSymbol(name)
		if err != nil {
			return nil, err
		}
		terms = append(terms, sym)
	}

	var nonTerms []symbol.Symbol
	for i, name := range b.NonTerminals {
		pos := positionAt(b.nonTermPos, i)
		if !b.checkDeclaredName(declared, name, pos) {
			continue
		}
		sym, err := w.RegisterNonTerminalSymbol(name)
		if err != nil {
			return nil, err
		}
		nonTerms = append(nonTerms, sym)
	}

	var start symbol.Symbol
	if b.Start != "" {
		sym, ok := r.ToSymbol(b.Start)
		if !ok || !sym.IsNonTerminal() {
			b.addError(semErrStartNotNonTerminal, b.Start, b.startPos)
		} else {
			start = sym
		}
	}

	prods := newProductionSet()
	hasProd := map[string]struct{}{}
	for _, decl := range b.prods {
		lhs, ok := r.ToSymbol(decl.lhs)
		if !ok || !lhs.IsNonTerminal() {
			b.addError(semErrUndefinedLHS, decl.lhs, decl.pos)
			continue
		}
		hasProd[decl.lhs] = struct{}{}

		rhs := make([]symbol.Symbol, 0, len(decl.rhs))
		valid := true
		for i, name := range decl.rhs {
			pos := positionAt(decl.rhsPos, i)
			if name == symbol.NameEOF {
				b.addError(semErrEOFInProduction, name, pos)
				valid = false
				continue
			}
			sym, ok := r.ToSymbol(name)
			if !ok {
				b.addError(semErrUndefinedSym, name, pos)
				valid = false
				continue
			}
			rhs = append(rhs, sym)
		}
		if !valid {
			continue
		}

		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		prods.append(prod)
	}

	for _, sym := range nonTerms {
		name, _ := r.ToText(sym)
		if _, ok := hasProd[name]; ok {
			continue
		}
		b.addError(semErrNoProduction, name, b.nonTermPosOf(name))
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &Grammar{
		name:          b.Name,
		symbolTable:   symTab,
		productionSet: prods,
		startSymbol:   start,
		terminals:     terms,
		nonTerminals:  nonTerms,
	}, nil
}

func (b *GrammarBuilder) checkDeclaredName(declared map[string]struct{}, name string, pos parser.Position) bool {
	if name == symbol.NameEOF || name == symbol.NameEpsilon {
		b.addError(semErrReservedName, name, pos)
		return false
	}
	if _, ok := declared[name]; ok {
		b.addError(semErrDuplicateName, name, pos)
		return false
	}
	declared[name] = struct{}{}
	return true
}

func (b *GrammarBuilder) nonTermPosOf(name string) parser.Position {
	for i, n := range b.NonTerminals {
		if n == name {
			return positionAt(b.nonTermPos, i)
		}
	}
	return parser.Position{}
}

func (b *GrammarBuilder) addError(cause error, detail string, pos parser.Position) {
	b.errs = append(b.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func positionAt(ps []parser.Position, i int) parser.Position {
	if i < 0 || i >= len(ps) {
		return parser.Position{}
	}
	return ps[i]
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) StartSymbol() symbol.Symbol {
	return g.startSymbol
}

// Terminals returns the declared terminals in declaration order. The EOF symbol is not included.
func (g *Grammar) Terminals() []symbol.Symbol {
	return append([]symbol.Symbol{}, g.terminals...)
}

// NonTerminals returns the declared non-terminals in declaration order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return append([]symbol.Symbol{}, g.nonTerminals...)
}

func (g *Grammar) SymbolTable() *symbol.SymbolTableReader {
	return g.symbolTable.Reader()
}

func (g *Grammar) ToSymbol(name string) (symbol.Symbol, bool) {
	return g.symbolTable.Reader().ToSymbol(name)
}

func (g *Grammar) ToText(sym symbol.Symbol) string {
	text, ok := g.symbolTable.Reader().ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

// Texts converts symbols into their names.
func (g *Grammar) Texts(syms []symbol.Symbol) []string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = g.ToText(sym)
	}
	return texts
}

// Productions returns the text representation of all productions ordered by the production number.
func (g *Grammar) Productions() []string {
	prods := g.productionSet.getAllProductions()
	texts := make([]string, len(prods))
	for i, prod := range prods {
		texts[i] = prod.text(g.symbolTable.Reader())
	}
	return texts
}

func (g *Grammar) analyze() error {
	g.analysisOnce.Do(func() {
		first, err := genFirstSet(g.productionSet)
		if err != nil {
			g.analysisErr = err
			return
		}
		follow, err := genFollowSet(g.productionSet, first, g.nonTerminals, g.startSymbol)
		if err != nil {
			g.analysisErr = err
			return
		}
		g.first = first
		g.follow = follow
	})
	return g.analysisErr
}

// First returns FIRST of a symbol. The result lists terminals in symbol order followed by
// the epsilon symbol when the symbol can derive the empty string.
func (g *Grammar) First(sym symbol.Symbol) ([]symbol.Symbol, error) {
	switch sym.Kind() {
	case symbol.KindTerminal, symbol.KindEOF, symbol.KindEpsilon:
		return []symbol.Symbol{sym}, nil
	case symbol.KindNonTerminal:
		if err := g.analyze(); err != nil {
			return nil, err
		}
		e := g.first.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", g.ToText(sym))
		}
		return e.list(), nil
	}
	return nil, fmt.Errorf("FIRST is not defined for a nil symbol")
}

// FirstOfSequence returns FIRST of a symbol sequence. FIRST of an empty sequence is {ε}.
func (g *Grammar) FirstOfSequence(syms []symbol.Symbol) ([]symbol.Symbol, error) {
	if err := g.analyze(); err != nil {
		return nil, err
	}
	e, err := g.first.findBySequence(syms)
	if err != nil {
		return nil, err
	}
	return e.list(), nil
}

// Follow returns FOLLOW of a non-terminal. The result lists the EOF symbol first when it is
// a member, then the terminals in symbol order.
func (g *Grammar) Follow(sym symbol.Symbol) ([]symbol.Symbol, error) {
	switch sym.Kind() {
	case symbol.KindTerminal, symbol.KindEOF, symbol.KindEpsilon:
		return nil, fmt.Errorf("%w: %v", ErrFollowOfTerminal, g.ToText(sym))
	case symbol.KindNil:
		return nil, fmt.Errorf("FOLLOW is not defined for a nil symbol")
	}
	if err := g.analyze(); err != nil {
		return nil, err
	}
	e, err := g.follow.find(sym)
	if err != nil {
		return nil, err
	}
	return e.list(), nil
}
