// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is any node of the syntax tree.
type Node interface {
	node()
	fmt.Stringer
}

func (*BoolLit) node()          {}
func (*CastExpr) node()         {}
func (*FloatLit) node()         {}
func (*Ident) node()            {}
func (*IntegerLit) node()       {}
func (*NullLit) node()          {}
func (*ParenExpr) node()        {}
func (*ResultColumn) node()     {}
func (*SelectStatement) node()  {}
func (*StringLit) node()        {}
func (*Type) node()             {}
func (*TypedLit) node()         {}
func (*UnaryExpr) node()        {}
func (*UnsupportedStmt) node()  {}

// Statement is a parsed SQL statement.
type Statement interface {
	Node
	stmt()
}

func (*SelectStatement) stmt() {}
func (*UnsupportedStmt) stmt() {}

// Expr is a parsed expression.
type Expr interface {
	Node
	expr()
}

func (*BoolLit) expr()    {}
func (*CastExpr) expr()   {}
func (*FloatLit) expr()   {}
func (*Ident) expr()      {}
func (*IntegerLit) expr() {}
func (*NullLit) expr()    {}
func (*ParenExpr) expr()  {}
func (*StringLit) expr()  {}
func (*TypedLit) expr()   {}
func (*UnaryExpr) expr()  {}

// ExprString returns the string representation of expr, or an empty string
// for a nil expr.
func ExprString(expr Expr) string {
	if expr == nil {
		return ""
	}
	return expr.String()
}

// SelectStatement is a SELECT without a FROM clause.
type SelectStatement struct {
	Select  Pos
	Columns []*ResultColumn
}

// String returns the string representation of the statement.
func (s *SelectStatement) String() string {
	var buf bytes.Buffer
	buf.WriteString("SELECT ")
	for i, col := range s.Columns {
		if i != 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col.String())
	}
	return buf.String()
}

// UnsupportedStmt records a statement recognized only by its leading
// keyword. Planning it fails with an unsupported statement error.
type UnsupportedStmt struct {
	Keyword    Pos
	KeywordLit string
}

// String returns the leading keyword.
func (s *UnsupportedStmt) String() string {
	return strings.ToUpper(s.KeywordLit)
}

// ResultColumn is one item of a SELECT list.
type ResultColumn struct {
	Expr  Expr
	As    Pos    // position of AS, if present
	Alias *Ident // optional
}

// Name returns the output column name: the alias if set, otherwise the
// expression text.
func (c *ResultColumn) Name() string {
	if c.Alias != nil {
		return c.Alias.Name
	}
	return c.Expr.String()
}

// String returns the string representation of the column.
func (c *ResultColumn) String() string {
	if c.Alias != nil {
		return fmt.Sprintf("%s AS %s", c.Expr.String(), c.Alias.String())
	}
	return c.Expr.String()
}

// Ident is an identifier.
type Ident struct {
	NamePos Pos
	Name    string
	Quoted  bool
}

// IdentName returns the name of ident, or an empty string if nil.
func IdentName(ident *Ident) string {
	if ident == nil {
		return ""
	}
	return ident.Name
}

// String returns the identifier, quoted if it was quoted in the source.
func (i *Ident) String() string {
	if i.Quoted {
		return `"` + strings.ReplaceAll(i.Name, `"`, `""`) + `"`
	}
	return i.Name
}

// StringLit is a single-quoted string literal.
type StringLit struct {
	ValuePos Pos
	Value    string
}

// String returns the literal quoted and escaped.
func (lit *StringLit) String() string {
	return `'` + strings.ReplaceAll(lit.Value, `'`, `''`) + `'`
}

// IntegerLit is an integer literal. Value holds its digits.
type IntegerLit struct {
	ValuePos Pos
	Value    string
}

func (lit *IntegerLit) String() string { return lit.Value }

// FloatLit is a numeric literal with a point or exponent.
type FloatLit struct {
	ValuePos Pos
	Value    string
}

func (lit *FloatLit) String() string { return lit.Value }

// NullLit is NULL.
type NullLit struct {
	Pos Pos
}

func (lit *NullLit) String() string { return "NULL" }

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	ValuePos Pos
	Value    bool
}

func (lit *BoolLit) String() string {
	if lit.Value {
		return "TRUE"
	}
	return "FALSE"
}

// TypedLit is a string literal prefixed by a type name, as in
// DATE '1992-01-01'. It evaluates like a CAST of the string.
type TypedLit struct {
	Type  *Type
	Value *StringLit
}

func (lit *TypedLit) String() string {
	return lit.Type.String() + " " + lit.Value.String()
}

// UnaryExpr is a prefix sign applied to an expression.
type UnaryExpr struct {
	OpPos Pos
	Op    Token // PLUS or MINUS
	X     Expr
}

func (expr *UnaryExpr) String() string {
	return expr.Op.String() + expr.X.String()
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen Pos
	X      Expr
	Rparen Pos
}

func (expr *ParenExpr) String() string {
	return "(" + expr.X.String() + ")"
}

// CastStyle distinguishes the spellings of a cast.
type CastStyle int

const (
	CastFunction    CastStyle = iota // CAST(x AS t)
	TryCastFunction                  // TRY_CAST(x AS t)
	CastOperator                     // x::t
)

// CastExpr converts X to Type. TRY_CAST yields NULL where CAST would fail.
type CastExpr struct {
	Style  CastStyle
	Cast   Pos // CAST/TRY_CAST keyword, or the "::" operator
	Lparen Pos
	X      Expr
	As     Pos
	Type   *Type
	Rparen Pos
}

// Try reports whether failed conversions produce NULL.
func (expr *CastExpr) Try() bool { return expr.Style == TryCastFunction }

func (expr *CastExpr) String() string {
	switch expr.Style {
	case TryCastFunction:
		return fmt.Sprintf("TRY_CAST(%s AS %s)", expr.X.String(), expr.Type.String())
	case CastOperator:
		return fmt.Sprintf("%s::%s", expr.X.String(), expr.Type.String())
	}
	return fmt.Sprintf("CAST(%s AS %s)", expr.X.String(), expr.Type.String())
}

// Type is a type reference with optional integer arguments, resolved to a
// DataType by the parser.
type Type struct {
	Name     *Ident
	Lparen   Pos
	Args     []*IntegerLit
	Rparen   Pos
	DataType ExprDataType
}

// String returns the type as written, upper-cased.
func (t *Type) String() string {
	name := strings.ToUpper(t.Name.Name)
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Value
	}
	return name + "(" + strings.Join(args, ",") + ")"
}
