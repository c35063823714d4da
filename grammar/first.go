package grammar

import (
	"fmt"

	"github.com/nihei9/predict/grammar/symbol"
)

// firstEntry holds FIRST of a symbol or a symbol sequence. The empty flag stands for
// the epsilon symbol so that the terminal set never contains it.
type firstEntry struct {
	symbols *symbolSet
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: newSymbolSet(),
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	return e.symbols.add(sym)
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	return e.symbols.merge(target.symbols)
}

// list returns the terminals followed by the epsilon symbol when the entry is nullable.
func (e *firstEntry) list() []symbol.Symbol {
	syms := e.symbols.symbols()
	if e.empty {
		syms = append(syms, symbol.SymbolEpsilon)
	}
	return syms
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	return fst
}

// find returns FIRST of the RHS of a production starting at the head position.
func (fst *firstSet) find(prod *production, head int) (*firstEntry, error) {
	if prod.rhsLen <= head {
		entry := newFirstEntry()
		entry.addEmpty()
		return entry, nil
	}
	return fst.findBySequence(prod.rhs[head:])
}

// findBySequence returns FIRST of a symbol sequence. An empty sequence derives only the empty string.
func (fst *firstSet) findBySequence(syms []symbol.Symbol) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range syms {
		switch sym.Kind() {
		case symbol.KindEpsilon:
			continue
		case symbol.KindTerminal, symbol.KindEOF:
			entry.add(sym)
			return entry, nil
		case symbol.KindNonTerminal:
			e := fst.findBySymbol(sym)
			if e == nil {
				return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
			}
			entry.mergeExceptEmpty(e)
			if !e.empty {
				return entry, nil
			}
		default:
			return nil, fmt.Errorf("FIRST is not defined for a nil symbol")
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

type firstComContext struct {
	first *firstSet
}

func newFirstComContext(prods *productionSet) *firstComContext {
	return &firstComContext{
		first: newFirstSet(prods),
	}
}

func genFirstSet(prods *productionSet) (*firstSet, error) {
	cc := newFirstComContext(prods)
	pass := 0
	for {
		pass++
		more := false
		for _, prod := range prods.getAllProductions() {
			e := cc.first.findBySymbol(prod.lhs)
			changed, err := genProdFirstEntry(cc, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FIRST: pass %v done; changed: %v", pass, more)
		if !more {
			break
		}
	}
	return cc.first, nil
}

func genProdFirstEntry(cc *firstComContext, acc *firstEntry, prod *production) (bool, error) {
	if prod.isEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.rhs {
		switch sym.Kind() {
		case symbol.KindEpsilon:
			continue
		case symbol.KindTerminal:
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}

		e := cc.first.findBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}
