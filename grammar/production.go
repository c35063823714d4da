package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/predict/grammar/symbol"
)

type productionNum uint16

const (
	productionNumNil = productionNum(0)
	productionNumMin = productionNum(1)
)

func (n productionNum) Int() int {
	return int(n)
}

type production struct {
	num    productionNum
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	for _, sym := range rhs {
		switch sym.Kind() {
		case symbol.KindNil:
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		case symbol.KindEOF:
			return nil, fmt.Errorf("a symbol of RHS must not be the EOF symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

// isEmpty reports whether the production derives the empty string by itself, that is, its RHS
// is empty or contains only the epsilon symbol.
func (p *production) isEmpty() bool {
	for _, sym := range p.rhs {
		if !sym.IsEpsilon() {
			return false
		}
	}
	return true
}

func (p *production) text(symTab *symbol.SymbolTableReader) string {
	var b strings.Builder
	lhs, _ := symTab.ToText(p.lhs)
	fmt.Fprintf(&b, "%v ->", lhs)
	if p.rhsLen == 0 {
		fmt.Fprintf(&b, " %v", symbol.NameEpsilon)
		return b.String()
	}
	for _, sym := range p.rhs {
		text, _ := symTab.ToText(sym)
		fmt.Fprintf(&b, " %v", text)
	}
	return b.String()
}

// productionSet keeps productions in insertion order. Unlike a set in the mathematical sense,
// it accepts the same production more than once so that a duplicated alternative surfaces
// as a conflict in the parsing table.
type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*production
	prods     []*production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*production{},
		num:       productionNumMin,
	}
}

func (ps *productionSet) append(prod *production) {
	prod.num = ps.num
	ps.num++

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.prods = append(ps.prods, prod)
}

func (ps *productionSet) findByNum(num productionNum) (*production, bool) {
	if num < productionNumMin || num.Int() > len(ps.prods) {
		return nil, false
	}
	return ps.prods[num.Int()-productionNumMin.Int()], true
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*production, bool) {
	if !lhs.IsNonTerminal() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*production {
	return ps.prods
}
