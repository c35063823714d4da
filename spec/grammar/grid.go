package grammar

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Grid is a parsing table laid out for people: a row per non-terminal, a column per terminal,
// and the text of a production, such as "S -> a S b", in each occupied cell.
type Grid struct {
	Terminals    []string
	NonTerminals []string
	Cells        [][]string
}

// WriteCSV writes the grid with a header row. The first cell of the header is empty and the first
// cell of each following row is a non-terminal name.
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, g.Terminals...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, nonTerm := range g.NonTerminals {
		record := append([]string{nonTerm}, g.Cells[i]...)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadGridCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("a parsing table needs a header row")
	}

	header := records[0]
	if len(header) < 2 || header[0] != "" {
		return nil, fmt.Errorf("a header row must start with an empty cell followed by terminals")
	}
	grid := &Grid{
		Terminals: append([]string{}, header[1:]...),
	}
	for i, record := range records[1:] {
		// The csv reader already guarantees every record has the same length as the header.
		if record[0] == "" {
			return nil, fmt.Errorf("row %v: a non-terminal name is missing", i+2)
		}
		grid.NonTerminals = append(grid.NonTerminals, record[0])
		grid.Cells = append(grid.Cells, append([]string{}, record[1:]...))
	}
	return grid, nil
}

// Cell returns the text of the cell addressed by names.
func (g *Grid) Cell(nonTerm, term string) (string, bool) {
	col := -1
	for i, t := range g.Terminals {
		if t == term {
			col = i
			break
		}
	}
	if col < 0 {
		return "", false
	}
	for i, n := range g.NonTerminals {
		if n == nonTerm {
			return g.Cells[i][col], true
		}
	}
	return "", false
}

// Equal reports whether two grids have the same labels and the same cells.
func (g *Grid) Equal(o *Grid) bool {
	if !equalStrings(g.Terminals, o.Terminals) || !equalStrings(g.NonTerminals, o.NonTerminals) {
		return false
	}
	if len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if !equalStrings(g.Cells[i], o.Cells[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Grid lays out the parsing table of a compiled grammar. It renders cells in the same way as
// the grid exported at compile time.
func (g *CompiledGrammar) Grid() (*Grid, error) {
	s := g.Syntactic
	if s == nil || s.Table == nil {
		return nil, fmt.Errorf("a compiled grammar has no parsing table")
	}

	// Columns are the declared terminals followed by the EOF symbol.
	var cols []int
	for term := 1; term < s.TerminalCount; term++ {
		if term == s.EOFSymbol {
			continue
		}
		cols = append(cols, term)
	}
	cols = append(cols, s.EOFSymbol)

	grid := &Grid{}
	for _, term := range cols {
		grid.Terminals = append(grid.Terminals, s.Terminals[term])
	}
	for nonTerm := 1; nonTerm < s.NonTerminalCount; nonTerm++ {
		grid.NonTerminals = append(grid.NonTerminals, s.NonTerminals[nonTerm])
		cells := make([]string, len(cols))
		for i, term := range cols {
			prod, err := s.Table.Lookup(nonTerm, term)
			if err != nil {
				return nil, err
			}
			if prod == 0 {
				continue
			}
			cells[i] = s.productionText(prod)
		}
		grid.Cells = append(grid.Cells, cells)
	}
	return grid, nil
}

func (s *SyntacticSpec) productionText(prod int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", s.NonTerminals[s.LHSSymbols[prod]])
	if len(s.RHSSymbols[prod]) == 0 {
		b.WriteString(" EPSILON")
		return b.String()
	}
	for _, sym := range s.RHSSymbols[prod] {
		switch {
		case sym > 0:
			fmt.Fprintf(&b, " %v", s.Terminals[sym])
		case sym < 0:
			fmt.Fprintf(&b, " %v", s.NonTerminals[sym*-1])
		default:
			b.WriteString(" EPSILON")
		}
	}
	return b.String()
}
