// Package parser implements a single-lookahead (two-token for struct/map
// disambiguation, and a scan over a run of `.IDENT` pairs for qualified
// type names) recursive-descent parser that turns a CEL token stream into
// an ast.Node tree.
package parser

import (
	"fmt"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/lexer"
)

// Parser holds a lexer and the single current token; deeper lookahead is
// served directly by the lexer's own peek buffer via tokenAt.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

// New creates a Parser positioned at the first token of l.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: l}
	if err := p.advance(); err != nil {
		return nil, toSyntaxError(err)
	}
	return p, nil
}

// Parse parses source as a single CEL expression.
func Parse(source string) (ast.Node, error) {
	p, err := New(lexer.New(source))
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, p.errorf("unexpected token %s after expression", p.cur.Type)
	}
	return expr, nil
}

func toSyntaxError(err error) error {
	if lexErr, ok := err.(*lexer.Error); ok {
		return &SyntaxError{Message: lexErr.Message, Line: lexErr.Line, Column: lexErr.Column}
	}
	return err
}

// advance consumes p.cur and pulls the next token from the lexer.
func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return toSyntaxError(err)
	}
	p.cur = tok
	return nil
}

// tokenAt returns the token i positions ahead of p.cur (tokenAt(0) == p.cur).
func (p *Parser) tokenAt(i int) (lexer.Token, error) {
	if i == 0 {
		return p.cur, nil
	}
	tok, err := p.lex.Peek(i - 1)
	if err != nil {
		return tok, toSyntaxError(err)
	}
	return tok, nil
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Line: p.cur.Line, Column: p.cur.Column}
}

// expect requires p.cur to have type t, consuming it; otherwise it raises a
// SyntaxError naming both the wanted and found token kinds.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type != t {
		return lexer.Token{}, p.errorf("expected %s, got %s", t, p.cur.Type)
	}
	tok := p.cur
	err := p.advance()
	return tok, err
}

var macroNames = map[string]bool{
	"map": true, "filter": true, "all": true, "exists": true, "existsOne": true,
}

func isMacroName(name string) bool { return macroNames[name] }
