package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	verdictAccept = "accept"
	verdictReject = "reject"
)

// Outcome is the expected result of parsing the source of a test case. Kind narrows a rejection
// down to a kind of syntax error; an empty Kind matches any syntax error.
type Outcome struct {
	Accept bool
	Kind   string
}

func (o *Outcome) String() string {
	if o.Accept {
		return verdictAccept
	}
	if o.Kind == "" {
		return verdictReject
	}
	return fmt.Sprintf("%v %v", verdictReject, o.Kind)
}

type TestCase struct {
	Description string
	Source      []byte
	Expected    *Outcome
}

// ParseTestCase reads a test case consisting of a description, a token sequence and an outcome
// separated by lines of hyphens.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	lineOffset := parts[0].lineCount + parts[1].lineCount + 2
	outcome, err := parseOutcome(parts[2].buf)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", lineOffset+1, err)
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Expected:    outcome,
	}, nil
}

func parseOutcome(src []byte) (*Outcome, error) {
	text := strings.TrimSpace(string(src))
	switch {
	case text == verdictAccept:
		return &Outcome{
			Accept: true,
		}, nil
	case text == verdictReject:
		return &Outcome{}, nil
	case strings.HasPrefix(text, verdictReject+" "):
		return &Outcome{
			Kind: strings.Join(strings.Fields(strings.TrimPrefix(text, verdictReject)), " "),
		}, nil
	}
	return nil, fmt.Errorf("an outcome must be '%v' or '%v [<error kind>]': %q", verdictAccept, verdictReject, text)
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	var buf bytes.Buffer
	line := s.Bytes()
	if reDelim.Match(line) {
		// An empty part, such as an empty token sequence, must still count as a part.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
