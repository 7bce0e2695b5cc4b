// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package types

import (
	"context"
	"errors"
	"fmt"

	"github.com/featurebasedb/sqlcast/sql3/parser"
)

// ErrNoMoreRows is returned by RowIterator.Next when the iterator is
// exhausted.
var ErrNoMoreRows = errors.New("no more rows")

// Row is a single row of values.
type Row []interface{}

// RowIterator produces rows one at a time.
type RowIterator interface {
	Next(ctx context.Context) (Row, error)
}

// PlannerColumn describes one output column of an operator.
type PlannerColumn struct {
	ColumnName   string
	RelationName string
	Type         parser.ExprDataType
}

// Schema is the ordered list of output columns of an operator.
type Schema []*PlannerColumn

// PlanOperator is a node in an execution plan
type PlanOperator interface {
	fmt.Stringer

	// the output columns of this operator
	Schema() Schema

	// returns an iterator over the rows produced by this operator
	Iterator(ctx context.Context, row Row) (RowIterator, error)

	// returns the child operators for this operator
	Children() []PlanOperator

	// creates a new operator with the children replaced
	WithChildren(children ...PlanOperator) (PlanOperator, error)

	// returns a map containing a rich description of this operator; intended
	// to be marshalled into json
	Plan() map[string]interface{}

	AddWarning(warning string)
	Warnings() []string
}
