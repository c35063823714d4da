package driver

import (
	"testing"
)

func TestSyntaxError_Error(t *testing.T) {
	tests := []struct {
		caption string
		err     error
		message string
	}{
		{
			caption: "a token read from a file has a position",
			err: &SyntaxError{
				Kind:    SyntaxErrorKindUnexpectedToken,
				Message: "unexpected token",
				Token: &Token{
					Text: "c",
					Row:  2,
					Col:  3,
				},
				ExpectedTerminals: []string{"a", "b"},
			},
			message: "2:3: unexpected token: 'c'; expected: a, b",
		},
		{
			caption: "a token of a slice has an index",
			err: &SyntaxError{
				Kind:    SyntaxErrorKindPrematureEOF,
				Message: "premature end of input",
				Token: &Token{
					Index: 3,
					EOF:   true,
				},
				ExpectedTerminals: []string{"b"},
			},
			message: "token #4: premature end of input: '$'; expected: b",
		},
		{
			caption: "expected terminals can be empty",
			err: &SyntaxError{
				Kind:    SyntaxErrorKindNoProduction,
				Message: "unexpected token under S",
				Token: &Token{
					Text:  "x",
					Index: 0,
				},
				NonTerminal: "S",
			},
			message: "token #1: unexpected token under S: 'x'",
		},
		{
			caption: "an input error",
			err: &InputError{
				Token: &Token{
					Text:  "$",
					Index: 1,
				},
				Message: "a reserved symbol cannot appear in an input",
			},
			message: "token #2: a reserved symbol cannot appear in an input: '$'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if msg := tt.err.Error(); msg != tt.message {
				t.Fatalf("unexpected message; want: %q, got: %q", tt.message, msg)
			}
		})
	}
}
