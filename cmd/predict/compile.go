package main

import (
	"fmt"

	"github.com/nihei9/predict/compressor"
	"github.com/nihei9/predict/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	format   *string
	compress *string
	report   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [<grammar file path> [<table file path>]]",
		Short: "Build the parsing table of a grammar and save it",
		Example: `  predict compile grammar.txt parseTable.csv
  predict compile grammar.txt table.json --compress row-displacement`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompile,
	}
	compileFlags.format = cmd.Flags().StringP("format", "f", "", "table format [csv|json] (default by the extension of the table file)")
	compileFlags.compress = cmd.Flags().StringP("compress", "c", "", "compression of a JSON table [none|unique|row-displacement]")
	compileFlags.report = cmd.Flags().BoolP("report", "r", false, "write <grammar name>-report.json next to the table")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	grmPath := cfg.Grammar
	tabPath := cfg.Table
	if len(args) > 0 {
		grmPath = args[0]
	}
	if len(args) > 1 {
		tabPath = args[1]
	}

	format, method, err := tableOptions(cmd, tabPath, len(args) > 1)
	if err != nil {
		return err
	}

	gram, err := readGrammar(grmPath)
	if err != nil {
		return err
	}

	tab, cgram, report, err := compileGrammar(gram, method, *compileFlags.report)
	if err != nil {
		return err
	}

	err = writeTable(tabPath, format, tab, cgram)
	if err != nil {
		return err
	}
	pterm.Success.Println(fmt.Sprintf("Parse table saved at: %v", tabPath))

	if report != nil {
		path := reportPath(tabPath, gram.Name())
		err := writeReport(path, report)
		if err != nil {
			return fmt.Errorf("Cannot write the report %s: %w", path, err)
		}
		pterm.Info.Println(fmt.Sprintf("Report saved at: %v", path))
	}

	return nil
}

// tableOptions decides the format and the compression of a table file. A table path given on
// the command line chooses the format by its extension unless --format says otherwise.
func tableOptions(cmd *cobra.Command, tabPath string, explicitPath bool) (string, compressor.Method, error) {
	format := cfg.Format
	if explicitPath {
		format = config.FormatFromPath(tabPath)
	}
	format = stringFlag(cmd, "format", format)
	switch format {
	case config.FormatCSV, config.FormatJSON:
	default:
		return "", "", fmt.Errorf("unknown table format: %v (available: %v, %v)", format, config.FormatCSV, config.FormatJSON)
	}

	method, err := compressor.ParseMethod(stringFlag(cmd, "compress", cfg.Compress))
	if err != nil {
		return "", "", err
	}
	return format, method, nil
}
