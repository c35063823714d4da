package driver

import (
	"strings"
	"testing"
)

func TestTokenStream(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []*Token
	}{
		{
			caption: "names are separated by spaces, tabs and newlines",
			src:     "id +\tid\n\n  ( )\r\n",
			tokens: []*Token{
				{Text: "id", Index: 0, Row: 1, Col: 1},
				{Text: "+", Index: 1, Row: 1, Col: 4},
				{Text: "id", Index: 2, Row: 1, Col: 6},
				{Text: "(", Index: 3, Row: 3, Col: 3},
				{Text: ")", Index: 4, Row: 3, Col: 5},
			},
		},
		{
			caption: "an empty input yields only the EOF token",
			src:     "",
		},
		{
			caption: "the reserved names are passed through as they are",
			src:     "$ EPSILON",
			tokens: []*Token{
				{Text: "$", Index: 0, Row: 1, Col: 1},
				{Text: "EPSILON", Index: 1, Row: 1, Col: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ts, err := NewTokenStream(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			for _, expected := range tt.tokens {
				tok, err := ts.Next()
				if err != nil {
					t.Fatal(err)
				}
				if *tok != *expected {
					t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
				}
			}
			for i := 0; i < 2; i++ {
				tok, err := ts.Next()
				if err != nil {
					t.Fatal(err)
				}
				if !tok.EOF || tok.Index != len(tt.tokens) {
					t.Fatalf("the EOF token was expected; got: %+v", tok)
				}
			}
		})
	}
}

func TestSliceTokenStream(t *testing.T) {
	ts := NewSliceTokenStream([]string{"a", "b"})
	for i, text := range []string{"a", "b"} {
		tok, err := ts.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Text != text || tok.Index != i || tok.EOF {
			t.Fatalf("unexpected token; want: %v, got: %+v", text, tok)
		}
	}
	tok, err := ts.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !tok.EOF || tok.String() != "$" {
		t.Fatalf("the EOF token was expected; got: %+v", tok)
	}
}

func TestLoadTokenLexSpec(t *testing.T) {
	clspec, err := loadTokenLexSpec()
	if err != nil {
		t.Fatal(err)
	}
	if clspec == nil {
		t.Fatal("a compiled lexical specification was expected")
	}
}
