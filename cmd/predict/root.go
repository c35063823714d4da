package main

import (
	"fmt"

	"github.com/nihei9/predict/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var traceKeys = []string{
	"predict.grammar",
	"predict.driver",
}

var rootFlags = struct {
	config     *string
	verbose    *bool
	traceLevel *string
}{}

// cfg holds the defaults loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Build an LL(1) parsing table from a grammar and validate token sequences against it",
	Long: `predict provides the following features:
- Builds an LL(1) predictive parsing table from a grammar and reports conflicts.
- Parses a sequence of terminal names with the table and reports the first syntax error.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "config file path (default predict.toml or predict.yaml in the working directory)")
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace the parser stack and each table lookup")
	rootFlags.traceLevel = rootCmd.PersistentFlags().String("trace-level", "", "trace level [Debug|Info|Error]")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err)
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()

	var err error
	if *rootFlags.config != "" {
		cfg, err = config.Load(*rootFlags.config)
	} else {
		cfg, err = config.LookupDefault(".")
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = *rootFlags.verbose
	}
	if *rootFlags.traceLevel != "" {
		cfg.TraceLevel = *rootFlags.traceLevel
	}

	level := tracing.TraceLevelFromString(cfg.TraceLevel)
	if cfg.Verbose {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}

	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// stringFlag returns a flag value when it is given explicitly, or the fallback otherwise.
func stringFlag(cmd *cobra.Command, name string, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Errorf("flag %v is not a string flag: %w", name, err))
	}
	return v
}
