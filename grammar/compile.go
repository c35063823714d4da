package grammar

import (
	"errors"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/nihei9/predict/compressor"
	"github.com/nihei9/predict/grammar/symbol"
	spec "github.com/nihei9/predict/spec/grammar"
)

type compileConfig struct {
	isReportingEnabled bool
	compression        compressor.Method
}

type CompileOption func(config *compileConfig)

func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.isReportingEnabled = true
	}
}

func Compression(m compressor.Method) CompileOption {
	return func(config *compileConfig) {
		config.compression = m
	}
}

// Compile builds the parsing table of a grammar and packs it into an artifact. When reporting is
// enabled and the grammar is not LL(1), Compile returns the report, which lists the conflicts,
// along with the *ConflictError.
func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{
		compression: compressor.MethodNone,
	}
	for _, opt := range opts {
		opt(config)
	}

	tab, err := gram.BuildParsingTable()
	if err != nil {
		var cErr *ConflictError
		if config.isReportingEnabled && errors.As(err, &cErr) {
			report, rErr := genReport(gram, nil, cErr.Conflicts)
			if rErr != nil {
				return nil, nil, rErr
			}
			return nil, report, err
		}
		return nil, nil, err
	}

	var report *spec.Report
	if config.isReportingEnabled {
		report, err = genReport(gram, tab, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	symTab := gram.symbolTable.Reader()
	terms, err := symTab.TerminalTexts()
	if err != nil {
		return nil, nil, err
	}
	nonTerms, err := symTab.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	prods := gram.productionSet.getAllProductions()
	lhsSyms := make([]int, len(prods)+1)
	rhsSyms := make([][]int, len(prods)+1)
	for _, p := range prods {
		lhsSyms[p.num] = p.lhs.Num().Int()
		rhsSyms[p.num] = encodeRHS(p.rhs)
	}

	entries := tab.Entries()
	fingerprint, err := structhash.Hash(struct {
		Name         string
		Terminals    []string
		NonTerminals []string
		StartSymbol  int
		LHSSymbols   []int
		RHSSymbols   [][]int
		Entries      []int
	}{
		Name:         gram.name,
		Terminals:    terms,
		NonTerminals: nonTerms,
		StartSymbol:  gram.startSymbol.Num().Int(),
		LHSSymbols:   lhsSyms,
		RHSSymbols:   rhsSyms,
		Entries:      entries,
	}, 1)
	if err != nil {
		return nil, nil, err
	}

	ptab, err := packParsingTable(entries, tab.terminalCount, config.compression)
	if err != nil {
		return nil, nil, err
	}

	return &spec.CompiledGrammar{
		Name:        gram.name,
		Fingerprint: fingerprint,
		Syntactic: &spec.SyntacticSpec{
			Table:            ptab,
			StartSymbol:      gram.startSymbol.Num().Int(),
			LHSSymbols:       lhsSyms,
			RHSSymbols:       rhsSyms,
			Terminals:        terms,
			TerminalCount:    tab.terminalCount,
			NonTerminals:     nonTerms,
			NonTerminalCount: tab.nonTerminalCount,
			EOFSymbol:        symbol.SymbolEOF.Num().Int(),
		},
	}, report, nil
}

func encodeRHS(rhs []symbol.Symbol) []int {
	enc := make([]int, len(rhs))
	for i, sym := range rhs {
		switch sym.Kind() {
		case symbol.KindTerminal:
			enc[i] = sym.Num().Int()
		case symbol.KindNonTerminal:
			enc[i] = sym.Num().Int() * -1
		default:
			enc[i] = 0
		}
	}
	return enc
}

func packParsingTable(entries []int, colCount int, m compressor.Method) (*spec.ParsingTable, error) {
	ptab := &spec.ParsingTable{
		Compression: m,
		RowCount:    len(entries) / colCount,
		ColCount:    colCount,
	}
	c, err := compressor.New(m, int(tableEntryEmpty))
	if err != nil {
		return nil, err
	}
	if c == nil {
		ptab.Entries = entries
		return ptab, nil
	}

	orig, err := compressor.NewOriginalTable(entries, colCount)
	if err != nil {
		return nil, err
	}
	if err := c.Compress(orig); err != nil {
		return nil, err
	}
	tracer().Infof("table: compressed by %v; %v -> %v", m, len(entries), c.Size())

	switch t := c.(type) {
	case *compressor.UniqueEntriesTable:
		ptab.UniqueEntries = t
	case *compressor.RowDisplacementTable:
		ptab.RowDisplacement = t
	default:
		return nil, fmt.Errorf("unexpected compressor: %T", c)
	}
	return ptab, nil
}

func genReport(gram *Grammar, tab *ParsingTable, conflicts []*Conflict) (*spec.Report, error) {
	symTab := gram.symbolTable.Reader()

	var terms []*spec.Terminal
	for _, sym := range symTab.TerminalSymbols() {
		name, _ := symTab.ToText(sym)
		terms = append(terms, &spec.Terminal{
			Number: sym.Num().Int(),
			Name:   name,
		})
	}

	var nonTerms []*spec.NonTerminal
	for _, sym := range gram.nonTerminals {
		first, err := gram.First(sym)
		if err != nil {
			return nil, err
		}
		follow, err := gram.Follow(sym)
		if err != nil {
			return nil, err
		}
		nt := &spec.NonTerminal{
			Number: sym.Num().Int(),
			Name:   gram.ToText(sym),
			Follow: symbolNums(follow),
		}
		for _, s := range first {
			if s.IsEpsilon() {
				nt.Nullable = true
				continue
			}
			nt.First = append(nt.First, s.Num().Int())
		}
		nonTerms = append(nonTerms, nt)
	}

	var prods []*spec.Production
	for _, p := range gram.productionSet.getAllProductions() {
		prod := &spec.Production{
			Number: p.num.Int(),
			LHS:    p.lhs.Num().Int(),
			RHS:    encodeRHS(p.rhs),
		}
		if tab != nil {
			for _, term := range tab.columns() {
				num, ok := tab.Lookup(p.lhs, term)
				if ok && num == p.num.Int() {
					prod.Predict = append(prod.Predict, term.Num().Int())
				}
			}
		}
		prods = append(prods, prod)
	}

	var cs []*spec.Conflict
	for _, c := range conflicts {
		cs = append(cs, &spec.Conflict{
			NonTerminal: c.nonTerm.Num().Int(),
			Terminal:    c.term.Num().Int(),
			Production1: c.prodNum1.Int(),
			Production2: c.prodNum2.Int(),
		})
	}

	return &spec.Report{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		Conflicts:    cs,
	}, nil
}

func symbolNums(syms []symbol.Symbol) []int {
	nums := make([]int, len(syms))
	for i, sym := range syms {
		nums[i] = sym.Num().Int()
	}
	return nums
}
