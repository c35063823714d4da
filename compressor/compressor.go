package compressor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Method names a way of packing a parsing table.
type Method string

const (
	MethodNone            = Method("none")
	MethodUniqueEntries   = Method("unique")
	MethodRowDisplacement = Method("row-displacement")
)

func (m Method) String() string {
	return string(m)
}

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodNone, MethodUniqueEntries, MethodRowDisplacement:
		return Method(s), nil
	case "":
		return MethodNone, nil
	}
	return MethodNone, fmt.Errorf("unknown compression method: %v (available: %v, %v, %v)", s, MethodNone, MethodUniqueEntries, MethodRowDisplacement)
}

type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *OriginalTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)

	// Size returns the number of integers the compressed form keeps.
	Size() int
}

var (
	_ Compressor = &UniqueEntriesTable{}
	_ Compressor = &RowDisplacementTable{}
)

// New returns an empty compressor of a method. MethodNone has no compressor, so it returns nil.
// emptyValue is the value of an empty cell.
func New(m Method, emptyValue int) (Compressor, error) {
	switch m {
	case MethodNone:
		return nil, nil
	case MethodUniqueEntries:
		return NewUniqueEntriesTable(), nil
	case MethodRowDisplacement:
		return NewRowDisplacementTable(emptyValue), nil
	}
	return nil, fmt.Errorf("unknown compression method: %v", m)
}

// UniqueEntriesTable shares identical rows. A parsing table tends to have such rows because
// non-terminals deriving the same shape of strings predict with the same pattern.
type UniqueEntriesTable struct {
	UniqueEntries    []int `json:"unique_entries"`
	RowNums          []int `json:"row_nums"`
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
}

func NewUniqueEntriesTable() *UniqueEntriesTable {
	return &UniqueEntriesTable{}
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *UniqueEntriesTable) Size() int {
	return len(tab.UniqueEntries) + len(tab.RowNums)
}

func (tab *UniqueEntriesTable) Compress(orig *OriginalTable) error {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		key := rowKey(row)
		rowNum, ok := key2RowNum[key]
		if !ok {
			rowNum = len(key2RowNum)
			key2RowNum[key] = rowNum
			uniqueEntries = append(uniqueEntries, row...)
		}
		rowNums[r] = rowNum
	}

	tab.UniqueEntries = uniqueEntries
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

// ForbiddenValue marks a slot of Bounds that no row owns.
const ForbiddenValue = -1

// RowDisplacementTable overlays sparse rows onto one array. Each row is shifted by its displacement
// so that its non-empty cells land on free slots, and Bounds records which row owns each slot.
type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *RowDisplacementTable) Size() int {
	return len(tab.Entries) + len(tab.Bounds) + len(tab.RowDisplacement)
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	rows := make([]rowInfo, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		rows[r].rowNum = r
		for c, v := range orig.row(r) {
			if v == tab.EmptyValue {
				continue
			}
			rows[r].nonEmptyCol = append(rows[r].nonEmptyCol, c)
		}
	}
	// Placing dense rows first leaves the small gaps to sparse rows.
	sort.SliceStable(rows, func(i int, j int) bool {
		return len(rows[i].nonEmptyCol) > len(rows[j].nonEmptyCol)
	})

	origEntriesLen := len(orig.entries)
	entries := make([]int, origEntriesLen)
	bounds := make([]int, origEntriesLen)
	for i := 0; i < origEntriesLen; i++ {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}

	resultBottom := orig.colCount
	rowDisplacement := make([]int, orig.rowCount)
	nextRowDisplacement := 0
	for _, info := range rows {
		if len(info.nonEmptyCol) == 0 {
			continue
		}

		d := nextRowDisplacement
		for overlaps(bounds, d, info.nonEmptyCol) {
			d++
		}

		rowDisplacement[info.rowNum] = d
		for _, c := range info.nonEmptyCol {
			entries[d+c] = orig.entries[info.rowNum*orig.colCount+c]
			bounds[d+c] = info.rowNum
		}
		if d+orig.colCount > resultBottom {
			resultBottom = d + orig.colCount
		}
		nextRowDisplacement = d + 1
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:resultBottom]
	tab.Bounds = bounds[:resultBottom]
	tab.RowDisplacement = rowDisplacement

	return nil
}

func overlaps(bounds []int, d int, cols []int) bool {
	for _, c := range cols {
		if bounds[d+c] != ForbiddenValue {
			return true
		}
	}
	return false
}
