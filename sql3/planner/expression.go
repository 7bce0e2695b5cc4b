// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"fmt"
	"math"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
	"github.com/featurebasedb/sqlcast/temporal"
)

// unaryOpPlanExpression is a unary op
type unaryOpPlanExpression struct {
	op    parser.Token
	opPos parser.Pos
	rhs   types.PlanExpression

	resultDataType parser.ExprDataType
}

func newUnaryOpPlanExpression(op parser.Token, opPos parser.Pos, rhs types.PlanExpression, dataType parser.ExprDataType) *unaryOpPlanExpression {
	return &unaryOpPlanExpression{
		op:             op,
		opPos:          opPos,
		rhs:            rhs,
		resultDataType: dataType,
	}
}

func (n *unaryOpPlanExpression) Evaluate(currentRow []interface{}) (interface{}, error) {
	evalRhs, err := n.rhs.Evaluate(currentRow)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case parser.PLUS:
		return evalRhs, nil
	case parser.MINUS:
		return n.minusWithTypeCheck(evalRhs)
	default:
		return nil, sql3.NewErrInternalf("unhandled operator %d", n.op)
	}
}

func (n *unaryOpPlanExpression) Type() parser.ExprDataType {
	return n.resultDataType
}

func (n *unaryOpPlanExpression) String() string {
	return fmt.Sprintf("%s%s", n.op.String(), n.rhs.String())
}

func (n *unaryOpPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["op"] = n.op.String()
	result["rhs"] = n.rhs.Plan()
	return result
}

func (n *unaryOpPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.rhs,
	}
}

func (n *unaryOpPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 1 {
		return nil, sql3.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newUnaryOpPlanExpression(n.op, n.opPos, children[0], n.resultDataType), nil
}

func (n *unaryOpPlanExpression) minusWithTypeCheck(rhs interface{}) (interface{}, error) {
	if rhs == nil {
		return nil, nil
	}
	switch v := rhs.(type) {
	case int64:
		if v == math.MinInt64 {
			return nil, n.errOutOfRange(v)
		}
		return -v, nil
	case decimal.Decimal:
		return v.Neg(), nil
	case float64:
		return -v, nil
	case temporal.Duration:
		if v.Value == math.MinInt64 {
			return nil, n.errOutOfRange(v)
		}
		return temporal.Duration{Value: -v.Value, Unit: v.Unit}, nil
	}
	return nil, sql3.NewErrInternalf("unexpected operand type '%T' for unary minus", rhs)
}

func (n *unaryOpPlanExpression) errOutOfRange(v interface{}) error {
	return errors.Newf(sql3.ErrOutOfRange, "[%d:%d] negating %v overflows '%s'", n.opPos.Line, n.opPos.Column, v, n.resultDataType.TypeDescription())
}

// aliasPlanExpression names the output column of an expression
type aliasPlanExpression struct {
	aliasName string
	expr      types.PlanExpression
}

var _ types.IdentifiableByName = (*aliasPlanExpression)(nil)

func newAliasPlanExpression(aliasName string, expr types.PlanExpression) *aliasPlanExpression {
	return &aliasPlanExpression{
		aliasName: aliasName,
		expr:      expr,
	}
}

func (n *aliasPlanExpression) Name() string {
	return n.aliasName
}

// evaluates expression based on current row and column
func (n *aliasPlanExpression) Evaluate(currentRow []interface{}) (interface{}, error) {
	return n.expr.Evaluate(currentRow)
}

// returns the type of the expression
func (n *aliasPlanExpression) Type() parser.ExprDataType {
	return n.expr.Type()
}

func (n *aliasPlanExpression) String() string {
	return fmt.Sprintf("%s as %s", n.expr.String(), n.aliasName)
}

func (n *aliasPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["aliasName"] = n.aliasName
	result["expr"] = n.expr.Plan()
	return result
}

func (n *aliasPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.expr,
	}
}

func (n *aliasPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 1 {
		return nil, sql3.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newAliasPlanExpression(n.aliasName, children[0]), nil
}

// literalPlanExpression is a constant. A nil value is NULL.
type literalPlanExpression struct {
	value    interface{}
	dataType parser.ExprDataType
}

func newNullLiteralPlanExpression() *literalPlanExpression {
	return &literalPlanExpression{dataType: parser.NewDataTypeVoid()}
}

func newIntLiteralPlanExpression(v int64) *literalPlanExpression {
	return &literalPlanExpression{value: v, dataType: parser.NewDataTypeInt()}
}

// newDecimalLiteralPlanExpression takes its type from the literal's own
// width and scale.
func newDecimalLiteralPlanExpression(v decimal.Decimal) *literalPlanExpression {
	return &literalPlanExpression{value: v, dataType: parser.NewDataTypeDecimal(v.Width, v.Scale)}
}

func newBoolLiteralPlanExpression(v bool) *literalPlanExpression {
	return &literalPlanExpression{value: v, dataType: parser.NewDataTypeBool()}
}

func newStringLiteralPlanExpression(v string) *literalPlanExpression {
	return &literalPlanExpression{value: v, dataType: parser.NewDataTypeString()}
}

func (n *literalPlanExpression) Evaluate(currentRow []interface{}) (interface{}, error) {
	return n.value, nil
}

func (n *literalPlanExpression) Type() parser.ExprDataType {
	return n.dataType
}

func (n *literalPlanExpression) String() string {
	switch v := n.value.(type) {
	case nil:
		return "null"
	case string:
		return (&parser.StringLit{Value: v}).String()
	}
	return FormatValue(n.value)
}

func (n *literalPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.dataType.TypeDescription()
	if n.value != nil {
		result["value"] = FormatValue(n.value)
	}
	return result
}

func (n *literalPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{}
}

func (n *literalPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	return n, nil
}

// castPlanExpression is a cast op
type castPlanExpression struct {
	lhs        types.PlanExpression
	targetType parser.ExprDataType
	opts       CastOptions
	atPos      parser.Pos
}

func newCastPlanExpression(lhs types.PlanExpression, targetType parser.ExprDataType, opts CastOptions, atPos parser.Pos) *castPlanExpression {
	return &castPlanExpression{
		lhs:        lhs,
		targetType: targetType,
		opts:       opts,
		atPos:      atPos,
	}
}

func (n *castPlanExpression) Evaluate(currentRow []interface{}) (interface{}, error) {
	evalLhs, err := n.lhs.Evaluate(currentRow)
	if err != nil {
		return nil, err
	}
	return Cast(evalLhs, n.lhs.Type(), n.targetType, n.opts, n.atPos)
}

func (n *castPlanExpression) Type() parser.ExprDataType {
	return n.targetType
}

func (n *castPlanExpression) String() string {
	if !n.opts.Strict {
		return fmt.Sprintf("try_cast(%s as %s)", n.lhs.String(), n.targetType.TypeDescription())
	}
	return fmt.Sprintf("cast(%s as %s)", n.lhs.String(), n.targetType.TypeDescription())
}

func (n *castPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["strict"] = n.opts.Strict
	result["lhs"] = n.lhs.Plan()
	return result
}

func (n *castPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.lhs,
	}
}

func (n *castPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 1 {
		return nil, sql3.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newCastPlanExpression(children[0], n.targetType, n.opts, n.atPos), nil
}
