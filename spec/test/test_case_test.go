package test

import (
	"strings"
	"testing"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption     string
		src         string
		description string
		source      string
		outcome     *Outcome
		err         bool
	}{
		{
			caption: "an accepted input",
			src: `balanced pairs
---
a a b b
---
accept
`,
			description: "balanced pairs",
			source:      "a a b b",
			outcome: &Outcome{
				Accept: true,
			},
		},
		{
			caption: "a rejection of any kind",
			src: `too many a
---
a a b
---
reject
`,
			description: "too many a",
			source:      "a a b",
			outcome:     &Outcome{},
		},
		{
			caption: "a rejection of a specific kind",
			src: `too many a
---
a a b
---
reject  premature end of input
`,
			description: "too many a",
			source:      "a a b",
			outcome: &Outcome{
				Kind: "premature end of input",
			},
		},
		{
			caption: "tokens can span lines",
			src: `multi-line
---
a
  b
---
accept
`,
			description: "multi-line",
			source:      "a\n  b",
			outcome: &Outcome{
				Accept: true,
			},
		},
		{
			caption: "an empty input",
			src: `empty
---
---
accept
`,
			description: "empty",
			source:      "",
			outcome: &Outcome{
				Accept: true,
			},
		},
		{
			caption: "a test case needs three parts",
			src: `no outcome
---
a b
`,
			err: true,
		},
		{
			caption: "an unknown verdict is an error",
			src: `bad outcome
---
a b
---
maybe
`,
			err: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.err {
				if err == nil {
					t.Fatalf("an error was expected")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if c.Description != tt.description {
				t.Fatalf("unexpected description; want: %q, got: %q", tt.description, c.Description)
			}
			if string(c.Source) != tt.source {
				t.Fatalf("unexpected source; want: %q, got: %q", tt.source, string(c.Source))
			}
			if *c.Expected != *tt.outcome {
				t.Fatalf("unexpected outcome; want: %v, got: %v", tt.outcome, c.Expected)
			}
		})
	}
}
