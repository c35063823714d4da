package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/nihei9/predict/grammar/symbol"
)

// symbolSet is a growable set of symbols ordered by their values, so every listing derived
// from it comes out in the same order.
type symbolSet struct {
	set *treeset.Set
}

func newSymbolSet() *symbolSet {
	return &symbolSet{
		set: treeset.NewWith(symbolComparator),
	}
}

func symbolComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(symbol.Symbol)), int(b.(symbol.Symbol)))
}

func (s *symbolSet) add(sym symbol.Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

func (s *symbolSet) merge(t *symbolSet) bool {
	if t == nil {
		return false
	}
	changed := false
	for _, sym := range t.symbols() {
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s *symbolSet) contains(sym symbol.Symbol) bool {
	return s.set.Contains(sym)
}

func (s *symbolSet) len() int {
	return s.set.Size()
}

func (s *symbolSet) symbols() []symbol.Symbol {
	vs := s.set.Values()
	syms := make([]symbol.Symbol, len(vs))
	for i, v := range vs {
		syms[i] = v.(symbol.Symbol)
	}
	return syms
}
