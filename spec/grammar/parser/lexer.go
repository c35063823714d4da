package parser

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindKWTokens       = tokenKind("%Tokens")
	tokenKindKWNonTerminals = tokenKind("%Non-terminals")
	tokenKindKWStart        = tokenKind("%Start")
	tokenKindKWRules        = tokenKind("%Rules")
	tokenKindSymbol         = tokenKind("symbol")
	tokenKindColon          = tokenKind(":")
	tokenKindOr             = tokenKind("|")
	tokenKindNewline        = tokenKind("newline")
	tokenKindEOF            = tokenKind("eof")
	tokenKindInvalid        = tokenKind("invalid")
)

// Position is a 1-based location in a source. The zero value means an unknown position.
type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newNameToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindSymbol,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// A symbol name is any run of characters other than white spaces, newlines, and the delimiters
// `:`, `|`, `#`, and `%`.
const namePattern = `[^\u{0009}\u{000A}\u{000D}\u{0020}\u{003A}\u{007C}\u{0023}\u{0025}]+`

var lexSpec = &mlspec.LexSpec{
	Name: "grammar",
	Entries: []*mlspec.LexEntry{
		newLexEntry("white_space", `[\u{0009}\u{0020}]+`),
		newLexEntry("newline", `[\u{000A}\u{000D}]+`),
		newLexEntry("line_comment", `\u{0023}[^\u{000A}\u{000D}]*`),
		newLexEntry("kw_tokens", `\u{0025}Tokens`),
		newLexEntry("kw_non_terminals", `\u{0025}Non\u{002D}terminals`),
		newLexEntry("kw_start", `\u{0025}Start`),
		newLexEntry("kw_rules", `\u{0025}Rules`),
		newLexEntry("colon", `\u{003A}`),
		newLexEntry("or", `\u{007C}`),
		newLexEntry("name", namePattern),
	},
}

func newLexEntry(kind string, pattern string) *mlspec.LexEntry {
	return &mlspec.LexEntry{
		Kind:    mlspec.LexKindName(kind),
		Pattern: mlspec.LexPattern(pattern),
	}
}

var (
	compiledLexSpecOnce sync.Once
	compiledLexSpec     *mlspec.CompiledLexSpec
	compiledLexSpecErr  error
)

func loadLexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
				}
				compiledLexSpecErr = fmt.Errorf("failed to compile the lexical specification of grammar files: %v", b.String())
				return
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := loadLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines, including the ones separated by comments
// or white spaces, are combined into one newline token.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			if newline == nil {
				newline = tok
			}
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kind mlspec.LexKindName
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), pos), nil
		}
		if tok.EOF {
			return newEOFToken(pos), nil
		}
		kind = l.s.KindNames[tok.KindID]
		switch kind {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch kind {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "kw_tokens":
		return newSymbolToken(tokenKindKWTokens, pos), nil
	case "kw_non_terminals":
		return newSymbolToken(tokenKindKWNonTerminals, pos), nil
	case "kw_start":
		return newSymbolToken(tokenKindKWStart, pos), nil
	case "kw_rules":
		return newSymbolToken(tokenKindKWRules, pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "name":
		return newNameToken(string(tok.Lexeme), pos), nil
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}
