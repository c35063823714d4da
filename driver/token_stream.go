package driver

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// Token is a terminal name read from an input. Row and Col are 1-based and zero when the input
// has no notion of lines.
type Token struct {
	Text  string
	Index int
	Row   int
	Col   int
	EOF   bool
}

func (t *Token) String() string {
	if t.EOF {
		return "$"
	}
	return t.Text
}

// TokenStream yields tokens and finally an EOF token. Next keeps returning the EOF token after
// the end of the input.
type TokenStream interface {
	Next() (*Token, error)
}

type sliceTokenStream struct {
	texts []string
	pos   int
}

// NewSliceTokenStream returns a token stream over terminal names. The EOF token is appended implicitly.
func NewSliceTokenStream(texts []string) TokenStream {
	return &sliceTokenStream{
		texts: texts,
	}
}

func (s *sliceTokenStream) Next() (*Token, error) {
	if s.pos >= len(s.texts) {
		return &Token{
			Index: len(s.texts),
			EOF:   true,
		}, nil
	}
	tok := &Token{
		Text:  s.texts[s.pos],
		Index: s.pos,
	}
	s.pos++
	return tok, nil
}

var tokenLexSpec = &mlspec.LexSpec{
	Name: "tokens",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName("white_space"),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
		},
		{
			Kind:    mlspec.LexKindName("word"),
			Pattern: mlspec.LexPattern(`[^\u{0009}\u{000A}\u{000D}\u{0020}]+`),
		},
	},
}

var (
	tokenLexSpecOnce     sync.Once
	compiledTokenLexSpec *mlspec.CompiledLexSpec
	tokenLexSpecErr      error
)

func loadTokenLexSpec() (*mlspec.CompiledLexSpec, error) {
	tokenLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(tokenLexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
				}
				tokenLexSpecErr = fmt.Errorf("failed to compile the lexical specification of token files: %v", b.String())
				return
			}
			tokenLexSpecErr = err
			return
		}
		compiledTokenLexSpec = clspec
	})
	return compiledTokenLexSpec, tokenLexSpecErr
}

type tokenStream struct {
	s     *mlspec.CompiledLexSpec
	lex   *mldriver.Lexer
	count int
	eof   *Token
}

// NewTokenStream returns a token stream reading terminal names separated by white spaces or newlines.
func NewTokenStream(src io.Reader) (TokenStream, error) {
	s, err := loadTokenLexSpec()
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &tokenStream{
		s:   s,
		lex: lex,
	}, nil
}

func (l *tokenStream) Next() (*Token, error) {
	if l.eof != nil {
		return l.eof, nil
	}
	for {
		tok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			l.eof = &Token{
				Index: l.count,
				Row:   tok.Row + 1,
				Col:   tok.Col + 1,
				EOF:   true,
			}
			return l.eof, nil
		}
		if !tok.Invalid && l.s.KindNames[tok.KindID] == "white_space" {
			continue
		}

		t := &Token{
			Text:  string(tok.Lexeme),
			Index: l.count,
			Row:   tok.Row + 1,
			Col:   tok.Col + 1,
		}
		l.count++
		return t, nil
	}
}
