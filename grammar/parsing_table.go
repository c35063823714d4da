package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/predict/grammar/symbol"
	spec "github.com/nihei9/predict/spec/grammar"
)

type tableEntry productionNum

const tableEntryEmpty = tableEntry(productionNumNil)

func (e tableEntry) isEmpty() bool {
	return e == tableEntryEmpty
}

// Conflict is a cell of a parsing table that two productions compete for. Production1 is the one
// that was written to the cell first.
type Conflict struct {
	NonTerminal string
	Terminal    string
	Production1 string
	Production2 string

	nonTerm  symbol.Symbol
	term     symbol.Symbol
	prodNum1 productionNum
	prodNum2 productionNum
}

func (c *Conflict) String() string {
	return fmt.Sprintf("(%v, %v): %v | %v", c.NonTerminal, c.Terminal, c.Production1, c.Production2)
}

// ConflictError means the grammar is not LL(1).
type ConflictError struct {
	Conflicts []*Conflict
}

// Error lists one line per cell. A cell that three or more productions compete for shows its
// first occupant followed by every competitor.
func (e *ConflictError) Error() string {
	type cell struct {
		nonTerm symbol.Symbol
		term    symbol.Symbol
	}
	var cells []cell
	lines := map[cell]*strings.Builder{}
	for _, c := range e.Conflicts {
		k := cell{nonTerm: c.nonTerm, term: c.term}
		l, ok := lines[k]
		if !ok {
			l = &strings.Builder{}
			fmt.Fprintf(l, "(%v, %v): %v", c.NonTerminal, c.Terminal, c.Production1)
			lines[k] = l
			cells = append(cells, k)
		}
		fmt.Fprintf(l, " | %v", c.Production2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "the grammar is not LL(1); %v conflicts in %v cells", len(e.Conflicts), len(cells))
	for _, k := range cells {
		fmt.Fprintf(&b, "\n    %v", lines[k].String())
	}
	return b.String()
}

// ParsingTable maps a pair of a non-terminal and a terminal to a production. Rows are indexed by
// non-terminal numbers and columns by terminal numbers. Row 0 and column 0 belong to the nil symbol
// and are always empty.
type ParsingTable struct {
	entries          []tableEntry
	terminalCount    int
	nonTerminalCount int

	gram *Grammar
}

func (t *ParsingTable) readEntry(nonTerm symbol.Symbol, term symbol.Symbol) tableEntry {
	return t.entries[nonTerm.Num().Int()*t.terminalCount+term.Num().Int()]
}

func (t *ParsingTable) writeEntry(nonTerm symbol.Symbol, term symbol.Symbol, prod productionNum) {
	t.entries[nonTerm.Num().Int()*t.terminalCount+term.Num().Int()] = tableEntry(prod)
}

// Lookup returns the number of the production registered in a cell. The number is 0 and ok is
// false when the cell is empty or the symbols do not address a cell.
func (t *ParsingTable) Lookup(nonTerm symbol.Symbol, term symbol.Symbol) (int, bool) {
	if !nonTerm.IsNonTerminal() {
		return 0, false
	}
	switch term.Kind() {
	case symbol.KindTerminal, symbol.KindEOF:
	default:
		return 0, false
	}
	if nonTerm.Num().Int() >= t.nonTerminalCount || term.Num().Int() >= t.terminalCount {
		return 0, false
	}
	e := t.readEntry(nonTerm, term)
	if e.isEmpty() {
		return 0, false
	}
	return int(e), true
}

// Production returns the text representation of a production, such as "S -> a S b".
func (t *ParsingTable) Production(num int) (string, bool) {
	prod, ok := t.gram.productionSet.findByNum(productionNum(num))
	if !ok {
		return "", false
	}
	return prod.text(t.gram.symbolTable.Reader()), true
}

func (t *ParsingTable) TerminalCount() int {
	return t.terminalCount
}

func (t *ParsingTable) NonTerminalCount() int {
	return t.nonTerminalCount
}

// Entries returns a copy of the flat table. A cell of a non-terminal n and a terminal t is located
// at n * TerminalCount() + t.
func (t *ParsingTable) Entries() []int {
	entries := make([]int, len(t.entries))
	for i, e := range t.entries {
		entries[i] = int(e)
	}
	return entries
}

// columns returns the terminals in declaration order followed by the EOF symbol.
func (t *ParsingTable) columns() []symbol.Symbol {
	return append(t.gram.Terminals(), symbol.SymbolEOF)
}

// Grid renders the table as labeled text cells. The columns are the declared terminals and $,
// and the rows are the non-terminals in declaration order.
func (t *ParsingTable) Grid() *spec.Grid {
	cols := t.columns()
	rows := t.gram.NonTerminals()
	grid := &spec.Grid{
		Terminals:    t.gram.Texts(cols),
		NonTerminals: t.gram.Texts(rows),
		Cells:        make([][]string, len(rows)),
	}
	for i, nonTerm := range rows {
		cells := make([]string, len(cols))
		for j, term := range cols {
			num, ok := t.Lookup(nonTerm, term)
			if !ok {
				continue
			}
			cells[j], _ = t.Production(num)
		}
		grid.Cells[i] = cells
	}
	return grid
}

// BuildParsingTable builds the LL(1) predictive parsing table of the grammar. When any cell
// receives two different productions, it returns a *ConflictError listing all of them.
func (g *Grammar) BuildParsingTable() (*ParsingTable, error) {
	if err := g.analyze(); err != nil {
		return nil, err
	}
	b := &ll1TableBuilder{
		gram:         g,
		prods:        g.productionSet,
		first:        g.first,
		follow:       g.follow,
		termCount:    g.symbolTable.Reader().TerminalCount(),
		nonTermCount: g.symbolTable.Reader().NonTerminalCount(),
	}
	return b.build()
}

type ll1TableBuilder struct {
	gram         *Grammar
	prods        *productionSet
	first        *firstSet
	follow       *followSet
	termCount    int
	nonTermCount int

	conflicts []*Conflict
}

func (b *ll1TableBuilder) build() (*ParsingTable, error) {
	ptab := &ParsingTable{
		entries:          make([]tableEntry, b.nonTermCount*b.termCount),
		terminalCount:    b.termCount,
		nonTerminalCount: b.nonTermCount,
		gram:             b.gram,
	}

	for _, nonTerm := range b.gram.nonTerminals {
		prods, ok := b.prods.findByLHS(nonTerm)
		if !ok {
			return nil, fmt.Errorf("productions were not found; non-terminal: %v", b.gram.ToText(nonTerm))
		}
		for _, prod := range prods {
			fst, err := b.first.find(prod, 0)
			if err != nil {
				return nil, err
			}
			for _, term := range fst.symbols.symbols() {
				b.writeEntry(ptab, nonTerm, term, prod)
			}
			if !fst.empty {
				continue
			}

			flw, err := b.follow.find(nonTerm)
			if err != nil {
				return nil, err
			}
			for _, term := range flw.list() {
				b.writeEntry(ptab, nonTerm, term, prod)
			}
		}
	}

	if len(b.conflicts) > 0 {
		return nil, &ConflictError{
			Conflicts: b.conflicts,
		}
	}

	return ptab, nil
}

// writeEntry never overwrites an occupied cell. A competing production is recorded as a conflict.
func (b *ll1TableBuilder) writeEntry(tab *ParsingTable, nonTerm symbol.Symbol, term symbol.Symbol, prod *production) {
	e := tab.readEntry(nonTerm, term)
	if e.isEmpty() {
		tracer().Debugf("table: [%v, %v] <- %v", b.gram.ToText(nonTerm), b.gram.ToText(term), prod.num)
		tab.writeEntry(nonTerm, term, prod.num)
		return
	}
	if productionNum(e) == prod.num {
		return
	}

	symTab := b.gram.symbolTable.Reader()
	prod1, _ := b.prods.findByNum(productionNum(e))
	c := &Conflict{
		NonTerminal: b.gram.ToText(nonTerm),
		Terminal:    b.gram.ToText(term),
		Production1: prod1.text(symTab),
		Production2: prod.text(symTab),
		nonTerm:     nonTerm,
		term:        term,
		prodNum1:    prod1.num,
		prodNum2:    prod.num,
	}
	tracer().Debugf("table: conflict %v", c)
	b.conflicts = append(b.conflicts, c)
}
