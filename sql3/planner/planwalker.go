// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// PlanVisitor visits nodes in the plan.
type PlanVisitor interface {
	// VisitOperator is invoked for each operator during PlanWalk. If the
	// returned PlanVisitor is not nil, PlanWalk visits each child of op with
	// it, followed by a call of VisitOperator(nil).
	VisitOperator(op types.PlanOperator) PlanVisitor
}

// PlanWalk traverses the plan depth-first. op must not be nil.
func PlanWalk(v PlanVisitor, op types.PlanOperator) {
	if v = v.VisitOperator(op); v == nil {
		return
	}

	for _, child := range op.Children() {
		PlanWalk(v, child)
	}

	v.VisitOperator(nil)
}

type planInspector func(types.PlanOperator) bool

func (f planInspector) VisitOperator(op types.PlanOperator) PlanVisitor {
	if f(op) {
		return f
	}
	return nil
}

// InspectPlan calls f for op and, while f returns true, for its children.
// f is called with nil after the children of an operator are visited.
func InspectPlan(op types.PlanOperator, f func(types.PlanOperator) bool) {
	PlanWalk(planInspector(f), op)
}

// ExprVisitor visits expressions in an expression tree.
type ExprVisitor interface {
	VisitExpr(expr types.PlanExpression) ExprVisitor
}

// ExprWalk traverses an expression tree depth-first.
func ExprWalk(v ExprVisitor, expr types.PlanExpression) {
	if v = v.VisitExpr(expr); v == nil {
		return
	}

	for _, child := range expr.Children() {
		ExprWalk(v, child)
	}

	v.VisitExpr(nil)
}

type exprInspector func(types.PlanExpression) bool

func (f exprInspector) VisitExpr(e types.PlanExpression) ExprVisitor {
	if f(e) {
		return f
	}
	return nil
}

// InspectExpression calls f for expr and, while f returns true, for its
// children. As with InspectPlan, f must accept nil.
func InspectExpression(expr types.PlanExpression, f func(types.PlanExpression) bool) {
	ExprWalk(exprInspector(f), expr)
}

// InspectExpressions calls f for every expression held by any operator of
// the plan.
func InspectExpressions(op types.PlanOperator, f func(types.PlanExpression) bool) {
	InspectPlan(op, func(op types.PlanOperator) bool {
		if n, ok := op.(types.ContainsExpressions); ok {
			for _, e := range n.Expressions() {
				InspectExpression(e, f)
			}
		}
		return true
	})
}

// CastTargets returns the base type name of every cast target in the plan,
// outer casts first.
func CastTargets(op types.PlanOperator) []string {
	var targets []string
	InspectExpressions(op, func(e types.PlanExpression) bool {
		if c, ok := e.(*castPlanExpression); ok {
			targets = append(targets, c.targetType.BaseTypeName())
		}
		return true
	})
	return targets
}
