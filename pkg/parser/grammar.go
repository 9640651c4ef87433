package parser

import (
	"strconv"
	"strings"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/lexer"
)

// parseExpr implements grammar rule 1: ConditionalOr ("?" ConditionalOr ":" Expr)?
func (p *Parser) parseExpr() (ast.Node, error) {
	pos := p.pos()
	cond, err := p.parseConditionalOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.QUESTION {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	then, err := p.parseConditionalOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Condition: cond, Then: then, Else: els, Position: pos}, nil
}

func (p *Parser) parseConditionalOr() (ast.Node, error) {
	left, err := p.parseConditionalAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.OR {
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseConditionalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpOr, Left: left, Right: right, Position: pos}
	}
	return left, nil
}

func (p *Parser) parseConditionalAnd() (ast.Node, error) {
	left, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.AND {
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpAnd, Left: left, Right: right, Position: pos}
	}
	return left, nil
}

var relOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.LT: ast.OpLt, lexer.LE: ast.OpLe, lexer.GT: ast.OpGt, lexer.GE: ast.OpGe,
	lexer.EQ: ast.OpEq, lexer.NE: ast.OpNe, lexer.IN: ast.OpIn,
}

// parseRelation is flat and left-associative: `a < b < c` parses as
// `(a < b) < c`, not a chained comparison.
func (p *Parser) parseRelation() (ast.Node, error) {
	left, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Position: pos}
	}
}

func (p *Parser) parseAddition() (ast.Node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := ast.OpAdd
		if p.cur.Type == lexer.MINUS {
			op = ast.OpSub
		}
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Position: pos}
	}
	return left, nil
}

func (p *Parser) parseMultiplication() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH || p.cur.Type == lexer.PERCENT {
		var op ast.BinaryOp
		switch p.cur.Type {
		case lexer.STAR:
			op = ast.OpMul
		case lexer.SLASH:
			op = ast.OpDiv
		case lexer.PERCENT:
			op = ast.OpMod
		}
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Position: pos}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.NOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNot, Operand: operand, Position: pos}, nil
	case lexer.MINUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNegate, Operand: operand, Position: pos}, nil
	}
	return p.parseMember()
}

// parseMember implements rule 8: Primary ( "." IDENT ("(" ArgList ")")? | "[" Expr "]" )*
func (p *Parser) parseMember() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case lexer.DOT:
			pos := p.pos()
			if err := p.advance(); err != nil {
				return nil, err
			}
			nameTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			if p.cur.Type == lexer.LPAREN {
				if err := p.advance(); err != nil {
					return nil, err
				}
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				node = &ast.Call{
					Target: node, Function: nameTok.Text, Args: args,
					IsMacro: isMacroName(nameTok.Text), Position: pos,
				}
				continue
			}
			node = &ast.Select{Operand: node, Field: nameTok.Text, Position: pos}
		case lexer.LBRACKET:
			pos := p.pos()
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			node = &ast.Index{Operand: node, Index: idx, Position: pos}
		default:
			return node, nil
		}
	}
}

// parsePrimary implements rules 9 and 10.
func (p *Parser) parsePrimary() (ast.Node, error) {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.NULL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralNull, Position: pos}, nil
	case lexer.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralBool, Value: true, Position: pos}, nil
	case lexer.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralBool, Value: false, Position: pos}, nil
	case lexer.INT:
		return p.parseIntLiteral(pos)
	case lexer.UINT:
		return p.parseUintLiteral(pos)
	case lexer.DOUBLE:
		return p.parseDoubleLiteral(pos)
	case lexer.STRING:
		return p.parseStringLiteral(pos)
	case lexer.BYTES:
		return p.parseBytesLiteral(pos)
	case lexer.LBRACKET:
		return p.parseListLiteral(pos)
	case lexer.LBRACE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseMapOrStruct("", pos)
	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.DOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.LPAREN {
			if err := p.advance(); err != nil {
				return nil, err
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Function: nameTok.Text, Args: args, Position: pos}, nil
		}
		return &ast.Identifier{Name: "." + nameTok.Text, Position: pos}, nil
	case lexer.IDENT:
		return p.parseIdentifierPrimary(pos)
	}
	return nil, p.errorf("unexpected token %s", p.cur.Type)
}

func (p *Parser) parseIntLiteral(pos ast.Position) (ast.Node, error) {
	text := p.cur.Text
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return nil, p.errorf("malformed integer literal %q", text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralInt, Value: v, Position: pos}, nil
}

func (p *Parser) parseUintLiteral(pos ast.Position) (ast.Node, error) {
	text := strings.TrimSuffix(strings.TrimSuffix(p.cur.Text, "u"), "U")
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return nil, p.errorf("malformed unsigned integer literal %q", p.cur.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralUint, Value: v, Position: pos}, nil
}

func (p *Parser) parseDoubleLiteral(pos ast.Position) (ast.Node, error) {
	text := p.cur.Text
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("malformed double literal %q", text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralDouble, Value: v, Position: pos}, nil
}

func (p *Parser) parseStringLiteral(pos ast.Position) (ast.Node, error) {
	content, _, err := decodeLexeme(p.cur.Text)
	if err != nil {
		return nil, p.errorf("%s", err)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralString, Value: content, Position: pos}, nil
}

func (p *Parser) parseBytesLiteral(pos ast.Position) (ast.Node, error) {
	content, _, err := decodeLexeme(p.cur.Text)
	if err != nil {
		return nil, p.errorf("%s", err)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralBytes, Value: []byte(content), Position: pos}, nil
}

func (p *Parser) parseListLiteral(pos ast.Position) (ast.Node, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var elems []ast.Node
	if p.cur.Type == lexer.RBRACKET {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ListExpr{Elements: elems, Position: pos}, nil
	}
	for {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Type == lexer.RBRACKET {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListExpr{Elements: elems, Position: pos}, nil
}

// parseMapOrStruct is called with '{' already consumed. typeName is "" for
// an untyped `{...}` literal that might still turn out to be a struct (an
// IDENT immediately followed by ':' commits to an anonymous struct), and
// non-empty when the caller already committed to a (possibly qualified)
// struct type name.
func (p *Parser) parseMapOrStruct(typeName string, pos ast.Position) (ast.Node, error) {
	if typeName != "" {
		return p.parseStructBody(typeName, pos)
	}
	if p.cur.Type == lexer.RBRACE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.MapExpr{Position: pos}, nil
	}
	if p.cur.Type == lexer.IDENT {
		next, err := p.tokenAt(1)
		if err != nil {
			return nil, err
		}
		if next.Type == lexer.COLON {
			return p.parseStructBody("", pos)
		}
	}
	return p.parseMapBody(pos)
}

func (p *Parser) parseStructBody(typeName string, pos ast.Position) (ast.Node, error) {
	var fields []ast.FieldInit
	for p.cur.Type != lexer.RBRACE {
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: nameTok.Text, Value: value})
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Struct{TypeName: typeName, Fields: fields, Position: pos}, nil
}

func (p *Parser) parseMapBody(pos ast.Position) (ast.Node, error) {
	var entries []ast.MapEntry
	for p.cur.Type != lexer.RBRACE {
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MapExpr{Entries: entries, Position: pos}, nil
}

func (p *Parser) parseArgList() ([]ast.Node, error) {
	var args []ast.Node
	if p.cur.Type == lexer.RPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseIdentifierPrimary handles rule 10 (Primary'): a call, a (possibly
// qualified) struct literal, or a bare identifier.
func (p *Parser) parseIdentifierPrimary(pos ast.Position) (ast.Node, error) {
	nameTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Type == lexer.LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.Call{Function: nameTok.Text, Args: args, Position: pos}, nil
	}

	if p.cur.Type == lexer.LBRACE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseMapOrStruct(nameTok.Text, pos)
	}

	if p.cur.Type == lexer.DOT {
		if qualified, consumed, ok, err := p.lookaheadQualifiedType(); err != nil {
			return nil, err
		} else if ok {
			for i := 0; i < consumed; i++ {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			if err := p.advance(); err != nil { // consume '{'
				return nil, err
			}
			typeName := nameTok.Text + "." + strings.Join(qualified, ".")
			return p.parseMapOrStruct(typeName, pos)
		}
	}

	return &ast.Identifier{Name: nameTok.Text, Position: pos}, nil
}

// lookaheadQualifiedType scans ("." IDENT)* starting at p.cur (a DOT)
// without consuming anything, committing true only when the run is
// immediately followed by '{'. consumed counts the DOT+IDENT tokens that
// must be advanced past to reach that '{'.
func (p *Parser) lookaheadQualifiedType() (names []string, consumed int, ok bool, err error) {
	pos := 0
	for {
		dotTok, e := p.tokenAt(pos)
		if e != nil {
			return nil, 0, false, e
		}
		if dotTok.Type != lexer.DOT {
			return nil, 0, false, nil
		}
		identTok, e := p.tokenAt(pos + 1)
		if e != nil {
			return nil, 0, false, e
		}
		if identTok.Type != lexer.IDENT {
			return nil, 0, false, nil
		}
		names = append(names, identTok.Text)
		pos += 2

		next, e := p.tokenAt(pos)
		if e != nil {
			return nil, 0, false, e
		}
		if next.Type == lexer.LBRACE {
			return names, pos, true, nil
		}
		if next.Type != lexer.DOT {
			return nil, 0, false, nil
		}
	}
}
