package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/predict/driver"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl [<grammar file path>|<table file path>]",
		Short: "Parse token sequences entered line by line",
		Long: `repl reads a line of terminal names at a time and parses it with a grammar.
Quit with <ctrl>D.`,
		Example: `  predict repl grammar.txt -v`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	path := cfg.Grammar
	if len(args) > 0 {
		path = args[0]
	}
	cgram, err := loadCompiledGrammar(path)
	if err != nil {
		return err
	}
	gram := driver.NewGrammar(cgram)

	repl, err := readline.New("predict> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	var opts []driver.ParserOption
	if cfg.Verbose {
		opts = append(opts, driver.Trace())
	}

	pterm.Info.Println("Enter terminal names separated by spaces. Quit with <ctrl>D.")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or an interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		err = driver.Parse(gram, strings.Fields(line), opts...)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Success.Println("accepted")
	}
	return nil
}
