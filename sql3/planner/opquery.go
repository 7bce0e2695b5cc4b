// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// PlanOpQuery is a query - this is the root node of an execution plan
type PlanOpQuery struct {
	planner *ExecutionPlanner

	ChildOp types.PlanOperator

	sql      string
	warnings []string
}

var _ types.PlanOperator = (*PlanOpQuery)(nil)

func NewPlanOpQuery(p *ExecutionPlanner, child types.PlanOperator, sql string) *PlanOpQuery {
	return &PlanOpQuery{
		planner:  p,
		ChildOp:  child,
		warnings: make([]string, 0),
		sql:      sql,
	}
}

func (p *PlanOpQuery) Schema() types.Schema {
	return p.ChildOp.Schema()
}

func (p *PlanOpQuery) Child() types.PlanOperator {
	return p.ChildOp
}

func (p *PlanOpQuery) Iterator(ctx context.Context, row types.Row) (types.RowIterator, error) {
	iter, err := p.ChildOp.Iterator(ctx, row)
	if err != nil {
		return nil, err
	}
	return newQueryIterator(p, iter), nil
}

// Rows runs the query to completion and returns every row.
func (p *PlanOpQuery) Rows(ctx context.Context) ([]types.Row, error) {
	iter, err := p.Iterator(ctx, nil)
	if err != nil {
		return nil, err
	}
	var rows []types.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := iter.Next(ctx)
		if err == types.ErrNoMoreRows {
			return rows, nil
		} else if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func (p *PlanOpQuery) Children() []types.PlanOperator {
	return []types.PlanOperator{
		p.ChildOp,
	}
}

func (p *PlanOpQuery) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	if len(children) != 1 {
		return nil, sql3.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	op := NewPlanOpQuery(p.planner, children[0], p.sql)
	op.warnings = append(op.warnings, p.warnings...)
	return op, nil
}

func (p *PlanOpQuery) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = schemaPlan(p.Schema())
	result["sql"] = p.sql
	result["warnings"] = p.warnings
	result["child"] = p.ChildOp.Plan()
	return result
}

func (p *PlanOpQuery) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpQuery) Warnings() []string {
	var w []string
	w = append(w, p.warnings...)
	if p.ChildOp != nil {
		w = append(w, p.ChildOp.Warnings()...)
	}
	return w
}

func (p *PlanOpQuery) String() string {
	return p.sql
}

type queryIterator struct {
	query *PlanOpQuery
	child types.RowIterator

	started time.Time
	rows    int
}

func newQueryIterator(query *PlanOpQuery, child types.RowIterator) *queryIterator {
	return &queryIterator{
		query: query,
		child: child,
	}
}

func (i *queryIterator) Next(ctx context.Context) (types.Row, error) {
	if i.started.IsZero() {
		i.started = time.Now()
	}

	row, err := i.child.Next(ctx)
	switch {
	case err == types.ErrNoMoreRows:
		i.query.planner.logger.Debugf("query complete: %d row(s) in %s: %s", i.rows, time.Since(i.started), i.query.sql)
	case err != nil:
		i.query.planner.logger.Debugf("query failed after %s: %s: %v", time.Since(i.started), i.query.sql, err)
	default:
		i.rows++
	}
	return row, err
}
