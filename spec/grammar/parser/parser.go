package parser

import (
	"io"

	verr "github.com/nihei9/predict/error"
)

type RootNode struct {
	Terminals    []*SymbolNode
	NonTerminals []*SymbolNode
	Start        *SymbolNode
	Productions  []*ProductionNode
}

type SymbolNode struct {
	Name string
	Pos  Position
}

type ProductionNode struct {
	LHS *SymbolNode
	RHS []*AlternativeNode
}

// AlternativeNode is one alternative of a production. An alternative without elements derives
// the empty string, as does an alternative consisting of EPSILON.
type AlternativeNode struct {
	Elements []*SymbolNode
	Pos      Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError, detail string) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

// Parse reads a grammar file consisting of the sections %Tokens, %Non-terminals, %Start, and %Rules
// in this order. A syntax error is returned as a *verr.SpecError.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		if e, ok := err.(error); ok {
			retErr = e
			return
		}
		panic(err)
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}

	p.consume(tokenKindNewline)

	p.expectSection(tokenKindKWTokens, synErrNoTokensSection)
	root.Terminals = p.parseNames()
	p.expectSectionEnd()

	p.expectSection(tokenKindKWNonTerminals, synErrNoNonTerminalsSection)
	root.NonTerminals = p.parseNames()
	p.expectSectionEnd()

	p.expectSection(tokenKindKWStart, synErrNoStartSection)
	startPos := p.lastTok.pos
	starts := p.parseNames()
	switch {
	case len(starts) == 0:
		raiseSyntaxError(startPos, synErrNoStartSymbol, "")
	case len(starts) > 1:
		raiseSyntaxError(starts[1].Pos, synErrMultipleStartSymbols, starts[1].Name)
	}
	root.Start = starts[0]
	p.expectSectionEnd()

	p.expectSection(tokenKindKWRules, synErrNoRulesSection)
	p.expectSectionEnd()

	for {
		prod := p.parseProduction()
		if prod == nil {
			break
		}
		root.Productions = append(root.Productions, prod)
	}

	return root
}

func (p *parser) expectSection(kind tokenKind, synErr *SyntaxError) {
	if p.consume(kind) {
		return
	}
	tok := p.peek()
	switch tok.kind {
	case tokenKindKWTokens, tokenKindKWNonTerminals, tokenKindKWStart, tokenKindKWRules:
		raiseSyntaxError(tok.pos, synErrMisplacedSection, string(tok.kind))
	}
	raiseSyntaxError(tok.pos, synErr, tok.text)
}

// expectSectionEnd accepts a newline, or the end of the file when it ends without a trailing newline.
func (p *parser) expectSectionEnd() {
	if p.consume(tokenKindNewline) {
		return
	}
	tok := p.peek()
	if tok.kind == tokenKindEOF {
		return
	}
	raiseSyntaxError(tok.pos, synErrSectionNoNewline, tok.text)
}

func (p *parser) parseNames() []*SymbolNode {
	var names []*SymbolNode
	for p.consume(tokenKindSymbol) {
		names = append(names, &SymbolNode{
			Name: p.lastTok.text,
			Pos:  p.lastTok.pos,
		})
	}
	return names
}

func (p *parser) parseProduction() *ProductionNode {
	if p.consume(tokenKindEOF) {
		return nil
	}
	if !p.consume(tokenKindSymbol) {
		tok := p.peek()
		switch tok.kind {
		case tokenKindKWTokens, tokenKindKWNonTerminals, tokenKindKWStart, tokenKindKWRules:
			raiseSyntaxError(tok.pos, synErrMisplacedSection, string(tok.kind))
		}
		raiseSyntaxError(tok.pos, synErrNoProductionName, tok.text)
	}
	lhs := &SymbolNode{
		Name: p.lastTok.text,
		Pos:  p.lastTok.pos,
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.peek().pos, synErrNoColon, lhs.Name)
	}
	rhs := []*AlternativeNode{p.parseAlternative()}
	for p.consume(tokenKindOr) {
		rhs = append(rhs, p.parseAlternative())
	}
	if !p.consume(tokenKindNewline) {
		tok := p.peek()
		if tok.kind != tokenKindEOF {
			raiseSyntaxError(tok.pos, synErrRuleNoNewline, tok.text)
		}
	}
	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	// lastTok is the colon or the bar preceding the alternative.
	alt := &AlternativeNode{
		Pos: p.lastTok.pos,
	}
	alt.Elements = p.parseNames()
	if len(alt.Elements) > 0 {
		alt.Pos = alt.Elements[0].Pos
	}
	return alt
}

func (p *parser) peek() *token {
	if p.peekedTok != nil {
		return p.peekedTok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(tok.pos, synErrInvalidToken, tok.text)
	}
	p.peekedTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == expected {
		p.peekedTok = nil
		p.lastTok = tok
		return true
	}
	return false
}
