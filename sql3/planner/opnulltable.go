// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"context"
	"fmt"

	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// PlanOpNullTable is the source of a SELECT without FROM. It produces a
// single row with no columns.
type PlanOpNullTable struct {
	warnings []string
}

func NewPlanOpNullTable() *PlanOpNullTable {
	return &PlanOpNullTable{
		warnings: make([]string, 0),
	}
}

func (p *PlanOpNullTable) Schema() types.Schema {
	return types.Schema{}
}

func (p *PlanOpNullTable) Iterator(ctx context.Context, row types.Row) (types.RowIterator, error) {
	return &nullTableIterator{}, nil
}

func (p *PlanOpNullTable) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	return NewPlanOpNullTable(), nil
}

func (p *PlanOpNullTable) Children() []types.PlanOperator {
	return []types.PlanOperator{}
}

func (p *PlanOpNullTable) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = schemaPlan(p.Schema())
	return result
}

func (p *PlanOpNullTable) String() string {
	return "null table"
}

func (p *PlanOpNullTable) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpNullTable) Warnings() []string {
	return p.warnings
}

type nullTableIterator struct {
	rowConsumed bool
}

func (i *nullTableIterator) Next(ctx context.Context) (types.Row, error) {
	if !i.rowConsumed {
		i.rowConsumed = true
		return make([]interface{}, 0), nil
	}
	return nil, types.ErrNoMoreRows
}

func schemaPlan(schema types.Schema) []string {
	sc := make([]string, 0, len(schema))
	for _, e := range schema {
		sc = append(sc, fmt.Sprintf("'%s', '%s', '%s'", e.ColumnName, e.RelationName, e.Type.TypeDescription()))
	}
	return sc
}
