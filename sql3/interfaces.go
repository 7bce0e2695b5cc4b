// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package sql3 holds the SQL front end: the parser, the planner that
// compiles constant SELECT lists into plans, and the coded errors shared by
// both.
package sql3

import (
	"context"

	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// CompilePlanner compiles a parsed statement into an executable plan.
type CompilePlanner interface {
	CompilePlan(context.Context, parser.Statement) (types.PlanOperator, error)
}
