// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"strconv"
	"strings"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// compileSelectStatement compiles a parser.SelectStatement AST into a
// PlanOperator. Without a FROM clause the projections are evaluated once
// against the null table.
func (p *ExecutionPlanner) compileSelectStatement(stmt *parser.SelectStatement) (types.PlanOperator, error) {
	projections := make([]types.PlanExpression, 0, len(stmt.Columns))
	for _, c := range stmt.Columns {
		planExpr, err := p.compileExpr(c.Expr)
		if err != nil {
			return nil, err
		}
		projections = append(projections, newAliasPlanExpression(c.Name(), planExpr))
	}
	return NewPlanOpQuery(p, NewPlanOpProjection(projections, NewPlanOpNullTable()), p.sql), nil
}

// analyzeSelectStatement rejects identifiers, since there is no relation to
// resolve them against, and folds signed integer literals so that the most
// negative int64 can be written directly.
func (p *ExecutionPlanner) analyzeSelectStatement(stmt *parser.SelectStatement) error {
	for _, col := range stmt.Columns {
		expr, err := p.analyzeExpression(col.Expr)
		if err != nil {
			return err
		}
		col.Expr = expr
	}
	return nil
}

func (p *ExecutionPlanner) analyzeExpression(expr parser.Expr) (parser.Expr, error) {
	node, err := parser.Walk(exprAnalyzer{}, expr)
	if err != nil {
		return nil, err
	}
	return node.(parser.Expr), nil
}

// exprAnalyzer is a parser.Visitor. Type references are not descended into
// so that type names are not mistaken for identifiers.
type exprAnalyzer struct{}

func (a exprAnalyzer) Visit(node parser.Node) (parser.Visitor, parser.Node, error) {
	if _, ok := node.(*parser.Type); ok {
		return nil, node, nil
	}
	return a, node, nil
}

func (a exprAnalyzer) VisitEnd(node parser.Node) (parser.Node, error) {
	switch n := node.(type) {
	case *parser.Ident:
		return nil, sql3.NewErrUnknownIdentifier(n.NamePos.Line, n.NamePos.Column, n.Name)

	case *parser.UnaryExpr:
		lit, ok := n.X.(*parser.IntegerLit)
		if !ok || n.Op != parser.MINUS || strings.HasPrefix(lit.Value, "-") {
			return n, nil
		}
		return &parser.IntegerLit{ValuePos: n.OpPos, Value: "-" + lit.Value}, nil
	}
	return node, nil
}

// compileExpr compiles an analyzed expression into a PlanExpression.
func (p *ExecutionPlanner) compileExpr(expr parser.Expr) (types.PlanExpression, error) {
	switch expr := expr.(type) {
	case *parser.IntegerLit:
		return compileIntegerLit(expr)

	case *parser.FloatLit:
		return compileFloatLit(expr)

	case *parser.StringLit:
		return newStringLiteralPlanExpression(expr.Value), nil

	case *parser.NullLit:
		return newNullLiteralPlanExpression(), nil

	case *parser.BoolLit:
		return newBoolLiteralPlanExpression(expr.Value), nil

	case *parser.ParenExpr:
		return p.compileExpr(expr.X)

	case *parser.UnaryExpr:
		return p.compileUnaryExpr(expr)

	case *parser.CastExpr:
		return p.compileCastExpr(expr)

	case *parser.TypedLit:
		// DATE '...' is a strict cast of the string
		return newCastPlanExpression(
			newStringLiteralPlanExpression(expr.Value.Value),
			expr.Type.DataType,
			CastOptions{Strict: true},
			expr.Type.Name.NamePos,
		), nil

	case *parser.Ident:
		return nil, sql3.NewErrUnknownIdentifier(expr.NamePos.Line, expr.NamePos.Column, expr.Name)

	default:
		return nil, sql3.NewErrInternalf("unexpected SQL expression type: %T", expr)
	}
}

func (p *ExecutionPlanner) compileUnaryExpr(expr *parser.UnaryExpr) (types.PlanExpression, error) {
	rhs, err := p.compileExpr(expr.X)
	if err != nil {
		return nil, err
	}
	if !typeIsCompatibleWithArithmeticOperator(rhs.Type()) {
		return nil, sql3.NewErrTypeIncompatibleWithArithmeticOperator(expr.OpPos.Line, expr.OpPos.Column, expr.Op.String(), rhs.Type().TypeDescription())
	}
	return newUnaryOpPlanExpression(expr.Op, expr.OpPos, rhs, rhs.Type()), nil
}

func (p *ExecutionPlanner) compileCastExpr(expr *parser.CastExpr) (types.PlanExpression, error) {
	lhs, err := p.compileExpr(expr.X)
	if err != nil {
		return nil, err
	}
	target := expr.Type.DataType
	if target == nil {
		return nil, sql3.NewErrInternalf("unresolved cast target type '%s'", expr.Type.String())
	}
	opts := CastOptions{Strict: !expr.Try()}

	// incompatible types are known before evaluation
	if opts.Strict && !CanCast(lhs.Type(), target) {
		return nil, sql3.NewErrInvalidCast(expr.Cast.Line, expr.Cast.Column, lhs.Type().TypeDescription(), target.TypeDescription())
	}
	return newCastPlanExpression(lhs, target, opts, expr.Cast), nil
}

func typeIsCompatibleWithArithmeticOperator(t parser.ExprDataType) bool {
	switch t.(type) {
	case *parser.DataTypeVoid, *parser.DataTypeInt, *parser.DataTypeDecimal, *parser.DataTypeFloat, *parser.DataTypeDuration:
		return true
	}
	return false
}

// compileIntegerLit types an integer literal as INT, or as DECIMAL(w,0) when
// it does not fit in an int64.
func compileIntegerLit(lit *parser.IntegerLit) (types.PlanExpression, error) {
	v, err := strconv.ParseInt(lit.Value, 10, 64)
	if err == nil {
		return newIntLiteralPlanExpression(v), nil
	}
	d, err := decimal.ParseDecimalType(lit.Value, literalWidth(lit.Value, 0), 0)
	if err != nil {
		return nil, sql3.NewErrLiteralOutOfRange(lit.ValuePos.Line, lit.ValuePos.Column, lit.Value)
	}
	return newDecimalLiteralPlanExpression(d), nil
}

// compileFloatLit types a literal with a decimal point as
// DECIMAL(digits, fractional digits). Trailing fractional zeros count toward
// the scale. Literals with an exponent take the narrowest type that holds
// them exactly.
func compileFloatLit(lit *parser.FloatLit) (types.PlanExpression, error) {
	var (
		d   decimal.Decimal
		err error
	)
	if strings.ContainsAny(lit.Value, "eE") {
		d, err = decimal.ParseDecimal(lit.Value)
	} else {
		var scale int64
		if i := strings.IndexByte(lit.Value, '.'); i >= 0 {
			scale = int64(len(lit.Value) - i - 1)
		}
		d, err = decimal.ParseDecimalType(lit.Value, literalWidth(lit.Value, scale), scale)
	}
	if err != nil {
		return nil, sql3.NewErrLiteralOutOfRange(lit.ValuePos.Line, lit.ValuePos.Column, lit.Value)
	}
	return newDecimalLiteralPlanExpression(d), nil
}

// literalWidth counts the significant integer digits of a plain numeric
// literal plus scale. It is at least 1.
func literalWidth(s string, scale int64) int64 {
	s = strings.TrimLeft(s, "+-")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	w := int64(len(strings.TrimLeft(s, "0"))) + scale
	if w < 1 {
		w = 1
	}
	return w
}
