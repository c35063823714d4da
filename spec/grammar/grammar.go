package grammar

import (
	"fmt"

	"github.com/nihei9/predict/compressor"
)

// CompiledGrammar is a self-contained artifact that drives a predictive parser.
type CompiledGrammar struct {
	Name string `json:"name"`

	// Fingerprint identifies the grammar and the table contents independently of the compression method.
	Fingerprint string         `json:"fingerprint"`
	Syntactic   *SyntacticSpec `json:"syntactic"`
}

// SyntacticSpec holds symbols by number. Index 0 of every symbol list is the nil symbol.
//
// An RHS symbol is encoded as follows:
//   - a positive value is a terminal number.
//   - a negative value is a non-terminal number multiplied by -1.
//   - 0 is the epsilon symbol.
type SyntacticSpec struct {
	Table            *ParsingTable `json:"table"`
	StartSymbol      int           `json:"start_symbol"`
	LHSSymbols       []int         `json:"lhs_symbols"`
	RHSSymbols       [][]int       `json:"rhs_symbols"`
	Terminals        []string      `json:"terminals"`
	TerminalCount    int           `json:"terminal_count"`
	NonTerminals     []string      `json:"non_terminals"`
	NonTerminalCount int           `json:"non_terminal_count"`
	EOFSymbol        int           `json:"eof_symbol"`
}

// ParsingTable has one of the three forms according to Compression. Its rows are non-terminal numbers,
// its columns are terminal numbers, and its values are production numbers. 0 means an empty cell.
type ParsingTable struct {
	Compression     compressor.Method                `json:"compression"`
	RowCount        int                              `json:"row_count"`
	ColCount        int                              `json:"col_count"`
	Entries         []int                            `json:"entries,omitempty"`
	UniqueEntries   *compressor.UniqueEntriesTable   `json:"unique_entries,omitempty"`
	RowDisplacement *compressor.RowDisplacementTable `json:"row_displacement,omitempty"`
}

func (t *ParsingTable) Lookup(row, col int) (int, error) {
	switch t.Compression {
	case compressor.MethodNone, "":
		if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
			return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
		}
		return t.Entries[row*t.ColCount+col], nil
	case compressor.MethodUniqueEntries:
		if t.UniqueEntries == nil {
			return 0, fmt.Errorf("a parsing table compressed by %v has no entries", t.Compression)
		}
		return t.UniqueEntries.Lookup(row, col)
	case compressor.MethodRowDisplacement:
		if t.RowDisplacement == nil {
			return 0, fmt.Errorf("a parsing table compressed by %v has no entries", t.Compression)
		}
		return t.RowDisplacement.Lookup(row, col)
	}
	return 0, fmt.Errorf("unknown compression method: %v", t.Compression)
}
