package tester

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/predict/driver"
	gspec "github.com/nihei9/predict/spec/grammar"
	tspec "github.com/nihei9/predict/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent = "    "
		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent, strings.Join(msgLines, "\n"+indent))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every file under a directory recursively.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Grammar *gspec.CompiledGrammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	gram := driver.NewGrammar(t.Grammar)
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(gram, c))
	}
	return rs
}

func runTest(gram driver.Grammar, c *TestCaseWithMetadata) *TestResult {
	toks, err := driver.NewTokenStream(bytes.NewReader(c.TestCase.Source))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	p, err := driver.NewParser(gram, toks)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	err = p.Parse()
	expected := c.TestCase.Expected
	if err == nil {
		if !expected.Accept {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("outcome mismatch; want: %v, got: accept", expected),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	var synErr *driver.SyntaxError
	if !errors.As(err, &synErr) {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	if expected.Accept || (expected.Kind != "" && expected.Kind != string(synErr.Kind)) {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("outcome mismatch; want: %v, got: reject %v\n%v", expected, synErr.Kind, synErr),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
