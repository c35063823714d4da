package main

import (
	"fmt"
	"os"

	"github.com/nihei9/predict/config"
	spec "github.com/nihei9/predict/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	csv *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "show [<grammar file path>|<table file path>]",
		Short: "Print a parsing table as a grid",
		Example: `  predict show grammar.txt
  predict show parseTable.csv
  predict show table.json --csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	showFlags.csv = cmd.Flags().Bool("csv", false, "print the grid as CSV")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	path := cfg.Grammar
	if len(args) > 0 {
		path = args[0]
	}

	grid, err := readGrid(path)
	if err != nil {
		return err
	}

	if *showFlags.csv {
		return grid.WriteCSV(os.Stdout)
	}

	data := pterm.TableData{
		append([]string{""}, grid.Terminals...),
	}
	for i, nonTerm := range grid.NonTerminals {
		data = append(data, append([]string{nonTerm}, grid.Cells[i]...))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	return nil
}

// readGrid reads a CSV grid or a JSON compiled grammar, or builds a grid from a grammar file.
func readGrid(path string) (*spec.Grid, error) {
	switch {
	case isCSV(path):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the parsing table %s: %w", path, err)
		}
		defer f.Close()
		return spec.ReadGridCSV(f)
	case config.FormatFromPath(path) == config.FormatJSON:
		cgram, err := readCompiledGrammar(path)
		if err != nil {
			return nil, err
		}
		return cgram.Grid()
	}

	gram, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	tab, err := gram.BuildParsingTable()
	if err != nil {
		printConflicts(err)
		return nil, err
	}
	return tab.Grid(), nil
}
