package grammar

import (
	"bytes"
	"strings"
	"testing"
)

func TestGrid_CSV(t *testing.T) {
	grid := &Grid{
		Terminals:    []string{"a", "b", "$"},
		NonTerminals: []string{"S"},
		Cells: [][]string{
			{"S -> a S b", "S -> EPSILON", "S -> EPSILON"},
		},
	}

	var buf bytes.Buffer
	if err := grid.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	expected := `,a,b,$
S,S -> a S b,S -> EPSILON,S -> EPSILON
`
	if buf.String() != expected {
		t.Fatalf("unexpected CSV; want: %q, got: %q", expected, buf.String())
	}

	read, err := ReadGridCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !read.Equal(grid) {
		t.Fatalf("a grid read back differs; want: %+v, got: %+v", grid, read)
	}
	if cell, ok := read.Cell("S", "$"); !ok || cell != "S -> EPSILON" {
		t.Fatalf("unexpected cell [S, $]: %q", cell)
	}
	if _, ok := read.Cell("S", "c"); ok {
		t.Fatalf("an unknown column must not be found")
	}
}

func TestReadGridCSV_Invalid(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "an empty file has no header",
			src:     ``,
		},
		{
			caption: "the first header cell must be empty",
			src:     "S,a\n",
		},
		{
			caption: "a row needs a non-terminal name",
			src:     ",a\n,S -> a\n",
		},
		{
			caption: "rows must have as many cells as the header",
			src:     ",a,b\nS,S -> a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := ReadGridCSV(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("an error was expected")
			}
		})
	}
}

func TestGrid_Equal(t *testing.T) {
	a := &Grid{
		Terminals:    []string{"a", "$"},
		NonTerminals: []string{"S"},
		Cells:        [][]string{{"S -> a", ""}},
	}
	b := &Grid{
		Terminals:    []string{"a", "$"},
		NonTerminals: []string{"S"},
		Cells:        [][]string{{"S -> a", "S -> EPSILON"}},
	}
	if !a.Equal(a) {
		t.Fatalf("a grid must equal itself")
	}
	if a.Equal(b) {
		t.Fatalf("grids with different cells must not be equal")
	}
}
