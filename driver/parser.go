package driver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.driver'.
func tracer() tracing.Trace {
	return tracing.Select("predict.driver")
}

const (
	// NameEOF and NameEpsilon are reserved and never accepted as input tokens.
	NameEOF     = "$"
	NameEpsilon = "EPSILON"
)

type SyntaxErrorKind string

const (
	SyntaxErrorKindUnexpectedToken = SyntaxErrorKind("unexpected token")
	SyntaxErrorKindNoProduction    = SyntaxErrorKind("no production")
	SyntaxErrorKindPrematureEOF    = SyntaxErrorKind("premature end of input")
	SyntaxErrorKindUnconsumedInput = SyntaxErrorKind("unconsumed input")
)

// SyntaxError is the first point where an input diverges from a grammar.
type SyntaxError struct {
	Kind    SyntaxErrorKind
	Message string
	Token   *Token

	// Terminal is the terminal name of Token. It is empty when the grammar doesn't declare the token.
	Terminal string

	// NonTerminal is the non-terminal whose table row had no entry for Token.
	NonTerminal string

	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	switch {
	case e.Token != nil && e.Token.Row > 0:
		fmt.Fprintf(&b, "%v:%v: ", e.Token.Row, e.Token.Col)
	case e.Token != nil:
		fmt.Fprintf(&b, "token #%v: ", e.Token.Index+1)
	}
	fmt.Fprintf(&b, "%v", e.Message)
	if e.Token != nil {
		fmt.Fprintf(&b, ": '%v'", e.Token)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

// InputError means an input contains a token the caller must not supply, such as the reserved $.
type InputError struct {
	Token   *Token
	Message string
}

func (e *InputError) Error() string {
	if e.Token != nil && e.Token.Row > 0 {
		return fmt.Sprintf("%v:%v: %v: '%v'", e.Token.Row, e.Token.Col, e.Message, e.Token.Text)
	}
	return fmt.Sprintf("token #%v: %v: '%v'", e.Token.Index+1, e.Message, e.Token.Text)
}

type ParserOption func(p *Parser) error

// Trace makes the parser emit the stack and each table lookup at the debug level.
func Trace() ParserOption {
	return func(p *Parser) error {
		p.trace = true
		return nil
	}
}

type Parser struct {
	gram  Grammar
	ts    TokenStream
	stack *arraystack.Stack
	trace bool

	toks []*Token
	pos  int
	tok  *Token
	term int
}

func NewParser(gram Grammar, ts TokenStream, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:  gram,
		ts:    ts,
		stack: arraystack.New(),
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse reads a grammar and a sequence of terminal names and reports whether the sequence is
// a sentence of the grammar. It returns nil on acceptance, a *SyntaxError at the first mismatch,
// or an *InputError when the input contains a reserved name.
func Parse(gram Grammar, tokens []string, opts ...ParserOption) error {
	p, err := NewParser(gram, NewSliceTokenStream(tokens), opts...)
	if err != nil {
		return err
	}
	return p.Parse()
}

// Parse runs the predictive automaton. The stack holds encoded symbols: a positive value is
// a terminal, a negative value is a non-terminal, and 0 is the epsilon symbol.
func (p *Parser) Parse() error {
	eof := p.gram.EOF()
	p.stack.Clear()
	p.stack.Push(eof)
	p.stack.Push(p.gram.StartSymbol() * -1)

	if err := p.readTokens(); err != nil {
		return err
	}
	if err := p.nextToken(); err != nil {
		return err
	}

	for {
		v, ok := p.stack.Peek()
		if !ok {
			return p.newSyntaxError(SyntaxErrorKindUnconsumedInput, "unconsumed input", "", nil)
		}
		top := v.(int)
		p.traceStep(top)

		switch {
		case top == 0:
			p.stack.Pop()
		case top > 0:
			if p.term == top {
				p.stack.Pop()
				if top == eof {
					return nil
				}
				if err := p.nextToken(); err != nil {
					return err
				}
				continue
			}

			expected := []string{p.gram.Terminal(top)}
			switch {
			case top == eof:
				return p.newSyntaxError(SyntaxErrorKindUnconsumedInput, "unconsumed input", "", expected)
			case p.tok.EOF:
				return p.newSyntaxError(SyntaxErrorKindPrematureEOF, "premature end of input", "", expected)
			}
			return p.newSyntaxError(SyntaxErrorKindUnexpectedToken, "unexpected token", "", expected)
		default:
			nonTerm := top * -1
			prod := 0
			if p.term != 0 {
				var err error
				prod, err = p.gram.Lookup(nonTerm, p.term)
				if err != nil {
					return err
				}
			}
			if p.trace {
				tracer().Debugf("lookup [%v, %v] = %v", p.gram.NonTerminal(nonTerm), p.tok, prod)
			}
			if prod == 0 {
				name := p.gram.NonTerminal(nonTerm)
				expected, err := p.expectedTerminals(nonTerm)
				if err != nil {
					return err
				}
				if p.tok.EOF {
					return p.newSyntaxError(SyntaxErrorKindPrematureEOF, "premature end of input", name, expected)
				}
				return p.newSyntaxError(SyntaxErrorKindNoProduction, fmt.Sprintf("unexpected token under %v", name), name, expected)
			}

			p.stack.Pop()
			rhs := p.gram.RHS(prod)
			for i := len(rhs) - 1; i >= 0; i-- {
				p.stack.Push(rhs[i])
			}
		}
	}
}

// readTokens drains the token stream before parsing so that a reserved name anywhere in
// the input is reported as an *InputError even when a syntax error precedes it.
func (p *Parser) readTokens() error {
	p.toks = p.toks[:0]
	p.pos = 0
	for {
		tok, err := p.ts.Next()
		if err != nil {
			return err
		}
		p.toks = append(p.toks, tok)
		if tok.EOF {
			return nil
		}
		switch tok.Text {
		case NameEOF, NameEpsilon:
			return &InputError{
				Token:   tok,
				Message: "a reserved symbol cannot appear in an input",
			}
		}
	}
}

func (p *Parser) nextToken() error {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.tok = tok
	if tok.EOF {
		p.term = p.gram.EOF()
		return nil
	}
	term, ok := p.gram.TerminalNum(tok.Text)
	if !ok {
		term = 0
	}
	p.term = term
	return nil
}

// expectedTerminals lists the terminals having an entry in the row of a non-terminal.
func (p *Parser) expectedTerminals(nonTerm int) ([]string, error) {
	var terms []string
	for term := 1; term < p.gram.TerminalCount(); term++ {
		prod, err := p.gram.Lookup(nonTerm, term)
		if err != nil {
			return nil, err
		}
		if prod == 0 {
			continue
		}
		terms = append(terms, p.gram.Terminal(term))
	}
	sort.Strings(terms)
	return terms, nil
}

func (p *Parser) newSyntaxError(kind SyntaxErrorKind, message string, nonTerm string, expected []string) *SyntaxError {
	var term string
	if p.term != 0 {
		term = p.gram.Terminal(p.term)
	}
	return &SyntaxError{
		Kind:              kind,
		Message:           message,
		Token:             p.tok,
		Terminal:          term,
		NonTerminal:       nonTerm,
		ExpectedTerminals: expected,
	}
}

func (p *Parser) traceStep(top int) {
	if !p.trace {
		return
	}
	var b strings.Builder
	// Values lists the stack from the top.
	for i, v := range p.stack.Values() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.symbolText(v.(int)))
	}
	tracer().Debugf("stack: [%v], top: %v, input: %v", b.String(), p.symbolText(top), p.tok)
}

func (p *Parser) symbolText(sym int) string {
	switch {
	case sym == 0:
		return NameEpsilon
	case sym > 0:
		return p.gram.Terminal(sym)
	}
	return p.gram.NonTerminal(sym * -1)
}
