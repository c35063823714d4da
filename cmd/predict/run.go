package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run [<token file path> <grammar file path> <table file path>]",
		Short: "Build a parsing table, save it, and parse a token file with it",
		Example: `  predict run
  predict run scan.txt grammar.txt parseTable.csv -v`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("run takes no arguments or exactly three arguments; got: %v", len(args))
			}
			return nil
		},
		RunE: runRun,
	}
	cmd.Flags().StringP("format", "f", "", "table format [csv|json] (default by the extension of the table file)")
	cmd.Flags().StringP("compress", "c", "", "compression of a JSON table [none|unique|row-displacement]")
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	tokPath, grmPath, tabPath := cfg.Tokens, cfg.Grammar, cfg.Table
	if len(args) == 3 {
		tokPath, grmPath, tabPath = args[0], args[1], args[2]
	}

	format, method, err := tableOptions(cmd, tabPath, len(args) == 3)
	if err != nil {
		return err
	}

	gram, err := readGrammar(grmPath)
	if err != nil {
		return err
	}

	tab, cgram, _, err := compileGrammar(gram, method, false)
	if err != nil {
		return err
	}

	err = writeTable(tabPath, format, tab, cgram)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("Parse table saved at: %v", tabPath))

	return parseTokens(cgram, tokPath)
}
