package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	spec "github.com/nihei9/predict/spec/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <report file path>",
		Short:   "Print a report in a readable format",
		Example: `  predict describe grammar-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	return printReport(os.Stdout, report)
}

func readReport(path string) (*spec.Report, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the report %s: %w", path, err)
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the report %s: %w", path, err)
	}

	return report, nil
}

const reportTemplate = `# Conflicts

{{ printConflictSummary . }}
{{ range .Conflicts -}}
{{ printConflict . }}
{{ end }}
# Terminals

{{ range .Terminals -}}
{{ printTerminal . }}
{{ end }}
# Non-terminals

{{ range .NonTerminals -}}
{{ printNonTerminal . }}
{{ end }}
# Productions

{{ range .Productions -}}
{{ printProduction . }}
{{ end }}`

func printReport(w io.Writer, report *spec.Report) error {
	termNames := map[int]string{}
	for _, t := range report.Terminals {
		termNames[t.Number] = t.Name
	}
	nonTermNames := map[int]string{}
	for _, n := range report.NonTerminals {
		nonTermNames[n.Number] = n.Name
	}
	prods := map[int]*spec.Production{}
	for _, p := range report.Productions {
		prods[p.Number] = p
	}

	termList := func(syms []int) string {
		names := make([]string, len(syms))
		for i, sym := range syms {
			names[i] = termNames[sym]
		}
		return strings.Join(names, ", ")
	}

	prodText := func(num int) string {
		prod, ok := prods[num]
		if !ok {
			return "?"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%v →", nonTermNames[prod.LHS])
		if len(prod.RHS) == 0 {
			fmt.Fprintf(&b, " ε")
			return b.String()
		}
		for _, e := range prod.RHS {
			switch {
			case e > 0:
				fmt.Fprintf(&b, " %v", termNames[e])
			case e < 0:
				fmt.Fprintf(&b, " %v", nonTermNames[e*-1])
			default:
				fmt.Fprintf(&b, " ε")
			}
		}
		return b.String()
	}

	fns := template.FuncMap{
		"printConflictSummary": func(report *spec.Report) string {
			switch len(report.Conflicts) {
			case 0:
				return "No conflict; the grammar is LL(1)."
			case 1:
				return "1 conflict occurred; the grammar is not LL(1)."
			}
			return fmt.Sprintf("%v conflicts occurred; the grammar is not LL(1).", len(report.Conflicts))
		},
		"printConflict": func(c *spec.Conflict) string {
			return fmt.Sprintf("[%v, %v]: %v | %v", nonTermNames[c.NonTerminal], termNames[c.Terminal], prodText(c.Production1), prodText(c.Production2))
		},
		"printTerminal": func(term *spec.Terminal) string {
			return fmt.Sprintf("%4v %v", term.Number, term.Name)
		},
		"printNonTerminal": func(nonTerm *spec.NonTerminal) string {
			first := termList(nonTerm.First)
			if nonTerm.Nullable {
				if first == "" {
					first = "ε"
				} else {
					first += ", ε"
				}
			}
			return fmt.Sprintf("%4v %v\n     FIRST:  {%v}\n     FOLLOW: {%v}", nonTerm.Number, nonTerm.Name, first, termList(nonTerm.Follow))
		},
		"printProduction": func(prod *spec.Production) string {
			if len(prod.Predict) == 0 {
				return fmt.Sprintf("%4v %v", prod.Number, prodText(prod.Number))
			}
			return fmt.Sprintf("%4v %v  on %v", prod.Number, prodText(prod.Number), termList(prod.Predict))
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}
