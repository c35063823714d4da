package grammar

import (
	"fmt"

	"github.com/nihei9/predict/grammar/symbol"
)

// followEntry holds FOLLOW of a non-terminal. The eof flag stands for the EOF symbol.
type followEntry struct {
	symbols *symbolSet
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: newSymbolSet(),
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	return e.symbols.add(sym)
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		if e.symbols.merge(fst.symbols) {
			changed = true
		}
	}

	if flw != nil {
		if e.symbols.merge(flw.symbols) {
			changed = true
		}
		if flw.eof {
			if e.addEOF() {
				changed = true
			}
		}
	}

	return changed
}

// list returns the EOF symbol, when present, followed by the terminals.
func (e *followEntry) list() []symbol.Symbol {
	var syms []symbol.Symbol
	if e.eof {
		syms = append(syms, symbol.SymbolEOF)
	}
	return append(syms, e.symbols.symbols()...)
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

type followComContext struct {
	prods  *productionSet
	first  *firstSet
	follow *followSet
}

func newFollowComContext(prods *productionSet, first *firstSet) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(prods),
	}
}

// genFollowSet computes FOLLOW of every non-terminal. nonTerms fixes the visiting order so that
// the trace is stable between runs.
func genFollowSet(prods *productionSet, first *firstSet, nonTerms []symbol.Symbol, start symbol.Symbol) (*followSet, error) {
	cc := newFollowComContext(prods, first)
	pass := 0
	for {
		pass++
		more := false
		for _, ntsym := range nonTerms {
			e, err := cc.follow.find(ntsym)
			if err != nil {
				return nil, err
			}
			changed, err := genFollowEntry(cc, e, ntsym, start)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FOLLOW: pass %v done; changed: %v", pass, more)
		if !more {
			break
		}
	}

	return cc.follow, nil
}

func genFollowEntry(cc *followComContext, acc *followEntry, ntsym symbol.Symbol, start symbol.Symbol) (bool, error) {
	changed := false

	if ntsym == start {
		if acc.addEOF() {
			changed = true
		}
	}
	for _, prod := range cc.prods.getAllProductions() {
		for i, sym := range prod.rhs {
			if sym != ntsym {
				continue
			}
			fst, err := cc.first.find(prod, i+1)
			if err != nil {
				return false, err
			}
			if acc.merge(fst, nil) {
				changed = true
			}
			if fst.empty {
				flw, err := cc.follow.find(prod.lhs)
				if err != nil {
					return false, err
				}
				if acc.merge(nil, flw) {
					changed = true
				}
			}
		}
	}

	return changed, nil
}
