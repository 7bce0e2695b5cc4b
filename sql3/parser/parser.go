// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/featurebasedb/sqlcast/errors"
)

// Parser represents a SQL parser.
type Parser struct {
	s *bufScanner
}

// NewParser returns a new instance of Parser that reads from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{s: newBufScanner(r)}
}

// ParseExprString parses s as a single expression.
func ParseExprString(s string) (Expr, error) {
	return NewParser(strings.NewReader(s)).ParseExpr()
}

// MustParseExprString parses s as a single expression. Panic on error.
func MustParseExprString(s string) Expr {
	expr, err := ParseExprString(s)
	if err != nil {
		panic(err)
	}
	return expr
}

// ParseTypeString parses s as a type reference, e.g. "decimal(10,2)".
func ParseTypeString(s string) (*Type, error) {
	p := NewParser(strings.NewReader(s))
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if pos, tok, lit := p.scan(); tok != EOF {
		return nil, newErrExpected(pos, tok, lit, "EOF")
	}
	return typ, nil
}

// ParseStatement parses a single statement. A trailing semicolon is
// permitted; anything after it is an error.
func (p *Parser) ParseStatement() (Statement, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, tok, _ := p.scan(); tok != SEMI {
		p.unscan()
	}
	if pos, tok, lit := p.scan(); tok != EOF {
		return nil, newErrExpected(pos, tok, lit, "semicolon or EOF")
	}
	return stmt, nil
}

// ParseExpr parses a single expression, which must be followed by EOF.
func (p *Parser) ParseExpr() (Expr, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if pos, tok, lit := p.scan(); tok != EOF {
		return nil, newErrExpected(pos, tok, lit, "EOF")
	}
	return expr, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	pos, tok, lit := p.scan()
	switch {
	case tok == SELECT:
		return p.parseSelectStatement(pos)
	case tok == IDENT || tok.IsKeyword():
		p.skipStatement()
		return &UnsupportedStmt{Keyword: pos, KeywordLit: lit}, nil
	}
	return nil, newErrExpected(pos, tok, lit, "statement")
}

// skipStatement consumes tokens up to, but not including, the next
// semicolon or EOF.
func (p *Parser) skipStatement() {
	for {
		if _, tok, _ := p.scan(); tok == SEMI || tok == EOF {
			p.unscan()
			return
		}
	}
}

func (p *Parser) parseSelectStatement(selectPos Pos) (_ *SelectStatement, err error) {
	stmt := &SelectStatement{Select: selectPos}
	for {
		col, err := p.parseResultColumn()
		if err != nil {
			return stmt, err
		}
		stmt.Columns = append(stmt.Columns, col)

		if _, tok, _ := p.scan(); tok != COMMA {
			p.unscan()
			break
		}
	}

	switch pos, tok, lit := p.scan(); tok {
	case FROM, WHERE:
		return stmt, NewErrUnsupportedStatement(pos.Line, pos.Column, strings.ToUpper(lit)+" clause")
	default:
		p.unscan()
	}
	return stmt, nil
}

func (p *Parser) parseResultColumn() (_ *ResultColumn, err error) {
	var col ResultColumn
	if col.Expr, err = p.parseExpr(); err != nil {
		return &col, err
	}

	pos, tok, _ := p.scan()
	if tok == AS {
		col.As = pos
		if col.Alias, err = p.parseIdent("column alias"); err != nil {
			return &col, err
		}
		return &col, nil
	}
	p.unscan()
	if tok == IDENT || tok == QIDENT {
		col.Alias, _ = p.parseIdent("column alias")
	}
	return &col, nil
}

func (p *Parser) parseIdent(desc string) (*Ident, error) {
	pos, tok, lit := p.scan()
	switch tok {
	case IDENT:
		return &Ident{Name: lit, NamePos: pos}, nil
	case QIDENT:
		return &Ident{Name: lit, NamePos: pos, Quoted: true}, nil
	default:
		return nil, newErrExpected(pos, tok, lit, desc)
	}
}

// parseExpr parses a signed operand. The cast operator binds tighter than
// a sign, so -'1'::INT negates the cast result.
func (p *Parser) parseExpr() (Expr, error) {
	pos, tok, _ := p.scan()
	if tok == PLUS || tok == MINUS {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{OpPos: pos, Op: tok, X: x}, nil
	}
	p.unscan()
	return p.parsePostfix()
}

// parsePostfix parses an operand followed by any number of :: casts.
func (p *Parser) parsePostfix() (Expr, error) {
	x, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		pos, tok, _ := p.scan()
		if tok != DOUBLECOLON {
			p.unscan()
			return x, nil
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		x = &CastExpr{Style: CastOperator, Cast: pos, X: x, Type: typ}
	}
}

func (p *Parser) parseOperand() (Expr, error) {
	pos, tok, lit := p.scan()
	switch tok {
	case INTEGER:
		return &IntegerLit{ValuePos: pos, Value: lit}, nil
	case FLOAT:
		return &FloatLit{ValuePos: pos, Value: lit}, nil
	case STRING:
		return &StringLit{ValuePos: pos, Value: lit}, nil
	case UNTERMSTRING:
		return nil, newErrSyntax(pos, "unterminated string literal")
	case NULL:
		return &NullLit{Pos: pos}, nil
	case TRUE, FALSE:
		return &BoolLit{ValuePos: pos, Value: tok == TRUE}, nil
	case LP:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rpos, rtok, rlit := p.scan()
		if rtok != RP {
			return nil, newErrExpected(rpos, rtok, rlit, "right paren")
		}
		return &ParenExpr{Lparen: pos, X: x, Rparen: rpos}, nil
	case CAST, TRY_CAST:
		p.unscan()
		return p.parseCastFunction()
	case DATE, TIMESTAMP:
		p.unscan()
		return p.parseTypedLit()
	case IDENT:
		// A type name followed by a string or an argument list starts a
		// typed literal; anything else is a bare identifier.
		if IsValidTypeName(lit) {
			_, next, _ := p.scan()
			p.unscan()
			if next == STRING || next == LP {
				p.unscan()
				return p.parseTypedLit()
			}
		}
		return &Ident{Name: lit, NamePos: pos}, nil
	case QIDENT:
		return &Ident{Name: lit, NamePos: pos, Quoted: true}, nil
	default:
		return nil, newErrExpected(pos, tok, lit, "expression")
	}
}

// parseCastFunction parses CAST(x AS type) or TRY_CAST(x AS type).
func (p *Parser) parseCastFunction() (_ *CastExpr, err error) {
	var expr CastExpr
	pos, tok, _ := p.scan()
	expr.Cast = pos
	expr.Style = CastFunction
	if tok == TRY_CAST {
		expr.Style = TryCastFunction
	}

	pos, tok, lit := p.scan()
	if tok != LP {
		return &expr, newErrExpected(pos, tok, lit, "left paren")
	}
	expr.Lparen = pos

	if expr.X, err = p.parseExpr(); err != nil {
		return &expr, err
	}

	pos, tok, lit = p.scan()
	if tok != AS {
		return &expr, newErrExpected(pos, tok, lit, "AS")
	}
	expr.As = pos

	if expr.Type, err = p.parseType(); err != nil {
		return &expr, err
	}

	pos, tok, lit = p.scan()
	if tok != RP {
		return &expr, newErrExpected(pos, tok, lit, "right paren")
	}
	expr.Rparen = pos
	return &expr, nil
}

// parseTypedLit parses a type followed by a string, as in DATE '2020-01-01'.
func (p *Parser) parseTypedLit() (_ *TypedLit, err error) {
	var lit TypedLit
	if lit.Type, err = p.parseType(); err != nil {
		return &lit, err
	}
	pos, tok, s := p.scan()
	if tok != STRING {
		return &lit, newErrExpected(pos, tok, s, "string literal")
	}
	lit.Value = &StringLit{ValuePos: pos, Value: s}
	return &lit, nil
}

// parseType parses a type name with optional integer arguments and resolves
// it to a data type.
func (p *Parser) parseType() (_ *Type, err error) {
	var typ Type
	pos, tok, lit := p.scan()
	switch tok {
	case IDENT, DATE, TIMESTAMP:
		typ.Name = &Ident{Name: lit, NamePos: pos}
	default:
		return &typ, newErrExpected(pos, tok, lit, "type name")
	}
	if !IsValidTypeName(lit) {
		return &typ, NewErrUnknownType(pos.Line, pos.Column, lit)
	}

	var args []int64
	if lpos, tok, _ := p.scan(); tok == LP {
		typ.Lparen = lpos
		for {
			apos, atok, alit := p.scan()
			if atok != INTEGER {
				return &typ, newErrExpected(apos, atok, alit, "integer literal")
			}
			typ.Args = append(typ.Args, &IntegerLit{ValuePos: apos, Value: alit})
			v, err := strconv.ParseInt(alit, 10, 64)
			if err != nil {
				return &typ, NewErrInvalidTypeArgs(pos.Line, pos.Column, typ.String(), "argument "+alit+" is out of range")
			}
			args = append(args, v)

			if _, tok, _ := p.scan(); tok != COMMA {
				p.unscan()
				break
			}
		}
		rpos, rtok, rlit := p.scan()
		if rtok != RP {
			return &typ, newErrExpected(rpos, rtok, rlit, "comma or right paren")
		}
		typ.Rparen = rpos
	} else {
		p.unscan()
	}

	if typ.DataType, err = ResolveType(lit, args); err != nil {
		return &typ, NewErrInvalidTypeArgs(pos.Line, pos.Column, typ.String(), errors.Message(err))
	}
	return &typ, nil
}

// scan returns the next non-whitespace token from the underlying scanner.
func (p *Parser) scan() (Pos, Token, string) {
	return p.s.Scan()
}

// unscan pushes the previously read token back onto the buffer.
func (p *Parser) unscan() {
	p.s.unscan()
}
