package main

import (
	"github.com/nihei9/predict/config"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse [<token file path> [<grammar file path>|<table file path>]]",
		Short: "Parse a sequence of terminal names",
		Long: `parse reads terminal names separated by white spaces and reports whether they form
a sentence of a grammar. The table is either a grammar file or a JSON table saved by compile.`,
		Example: `  predict parse scan.txt grammar.txt
  echo "a a b b" | predict parse - table.json -v`,
		Args: cobra.MaximumNArgs(2),
		RunE: runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	tokPath := cfg.Tokens
	tabPath := cfg.Grammar
	if config.FormatFromPath(cfg.Table) == config.FormatJSON {
		tabPath = cfg.Table
	}
	if len(args) > 0 {
		tokPath = args[0]
	}
	if len(args) > 1 {
		tabPath = args[1]
	}

	cgram, err := loadCompiledGrammar(tabPath)
	if err != nil {
		return err
	}

	return parseTokens(cgram, tokPath)
}
