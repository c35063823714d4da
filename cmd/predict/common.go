package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/nihei9/predict/compressor"
	"github.com/nihei9/predict/config"
	"github.com/nihei9/predict/driver"
	verr "github.com/nihei9/predict/error"
	"github.com/nihei9/predict/grammar"
	spec "github.com/nihei9/predict/spec/grammar"
	"github.com/nihei9/predict/spec/grammar/parser"
	"github.com/pterm/pterm"
)

// recoverError converts a panic into an error and prints its stack trace. Use it with defer in
// a RunE function returning a named error.
func recoverError(retErr *error) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	gram, err := func() (*grammar.Grammar, error) {
		ast, err := parser.Parse(f)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return grammar.NewGrammarBuilderFromAST(name, ast).Build()
	}()
	if err != nil {
		return nil, withSource(err, path)
	}
	return gram, nil
}

// withSource attaches a file path to errors found in a grammar file so that they quote
// the offending line.
func withSource(err error, path string) error {
	var specErrs verr.SpecErrors
	if errors.As(err, &specErrs) {
		for _, e := range specErrs {
			e.FilePath = path
			e.SourceName = path
		}
		return err
	}
	var specErr *verr.SpecError
	if errors.As(err, &specErr) {
		specErr.FilePath = path
		specErr.SourceName = path
	}
	return err
}

func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the parsing table %s: %w", path, err)
	}
	cgram := &spec.CompiledGrammar{}
	err = json.Unmarshal(data, cgram)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the parsing table %s: %w", path, err)
	}
	if cgram.Syntactic == nil || cgram.Syntactic.Table == nil {
		return nil, fmt.Errorf("%s is not a compiled grammar", path)
	}
	return cgram, nil
}

// loadCompiledGrammar reads a compiled grammar from a JSON file, or builds one from a grammar file.
func loadCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	if config.FormatFromPath(path) == config.FormatJSON {
		return readCompiledGrammar(path)
	}
	gram, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	cgram, _, err := grammar.Compile(gram)
	if err != nil {
		printConflicts(err)
		return nil, err
	}
	return cgram, nil
}

// compileGrammar builds the parsing table of a grammar and packs it according to the options.
func compileGrammar(gram *grammar.Grammar, method compressor.Method, report bool) (*grammar.ParsingTable, *spec.CompiledGrammar, *spec.Report, error) {
	tab, err := gram.BuildParsingTable()
	if err != nil {
		printConflicts(err)
		return nil, nil, nil, err
	}

	opts := []grammar.CompileOption{
		grammar.Compression(method),
	}
	if report {
		opts = append(opts, grammar.EnableReporting())
	}
	cgram, rep, err := grammar.Compile(gram, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return tab, cgram, rep, nil
}

func printConflicts(err error) {
	var cErr *grammar.ConflictError
	if !errors.As(err, &cErr) {
		return
	}
	for _, c := range cErr.Conflicts {
		pterm.Error.Println(fmt.Sprintf("conflict at [%v, %v]: %v | %v", c.NonTerminal, c.Terminal, c.Production1, c.Production2))
	}
}

// writeTable saves a parsing table as a CSV grid or as a JSON compiled grammar.
func writeTable(path string, format string, tab *grammar.ParsingTable, cgram *spec.CompiledGrammar) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Cannot write the parsing table %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case config.FormatCSV:
		return tab.Grid().WriteCSV(f)
	case config.FormatJSON:
		b, err := json.Marshal(cgram)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(f, "%v\n", string(b))
		return err
	}
	return fmt.Errorf("unknown table format: %v", format)
}

func writeReport(path string, report *spec.Report) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

func reportPath(tablePath string, gramName string) string {
	dir, _ := filepath.Split(tablePath)
	return filepath.Join(dir, gramName+"-report.json")
}

func isCSV(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".csv"
}

// openTokens opens a token file. The path "-" stands for the standard input.
func openTokens(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the token file %s: %w", path, err)
	}
	return f, nil
}

// parseTokens runs the predictive parser over a token file.
func parseTokens(cgram *spec.CompiledGrammar, tokPath string) error {
	src, err := openTokens(tokPath)
	if err != nil {
		return err
	}
	defer src.Close()

	ts, err := driver.NewTokenStream(src)
	if err != nil {
		return err
	}
	var opts []driver.ParserOption
	if cfg.Verbose {
		opts = append(opts, driver.Trace())
	}
	p, err := driver.NewParser(driver.NewGrammar(cgram), ts, opts...)
	if err != nil {
		return err
	}
	err = p.Parse()
	if err != nil {
		return err
	}
	pterm.Success.Println("Parse completed successfully! No errors detected.")
	return nil
}
