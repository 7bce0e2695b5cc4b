// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"context"
	"strings"

	"github.com/featurebasedb/sqlcast/logger"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
)

// ExecutionPlanner compiles SQL text into a query plan
type ExecutionPlanner struct {
	logger logger.Logger
	sql    string
}

var _ sql3.CompilePlanner = (*ExecutionPlanner)(nil)

func NewExecutionPlanner(logger logger.Logger, sql string) *ExecutionPlanner {
	return &ExecutionPlanner{
		logger: logger,
		sql:    sql,
	}
}

// CompilePlan takes an AST (parser.Statement) and compiles into a query plan returning the root
// PlanOperator
// The act of compiling includes an analysis step that does semantic analysis of the AST, this includes
// type checking, and sometimes AST rewriting. The compile phase uses the type-checked and rewritten AST
// to produce a query plan.
func (p *ExecutionPlanner) CompilePlan(ctx context.Context, stmt parser.Statement) (types.PlanOperator, error) {
	// call analyze first
	err := p.analyzePlan(stmt)
	if err != nil {
		return nil, err
	}

	var rootOperator types.PlanOperator
	switch stmt := stmt.(type) {
	case *parser.SelectStatement:
		rootOperator, err = p.compileSelectStatement(stmt)
	default:
		return nil, sql3.NewErrInternalf("cannot plan statement: %T", stmt)
	}
	if err != nil {
		return nil, err
	}
	p.logger.Debugf("compiled plan for %q", p.sql)
	return rootOperator, nil
}

func (p *ExecutionPlanner) analyzePlan(stmt parser.Statement) error {
	switch stmt := stmt.(type) {
	case *parser.SelectStatement:
		return p.analyzeSelectStatement(stmt)
	case *parser.UnsupportedStmt:
		return sql3.NewErrUnsupportedStatement(stmt.Keyword.Line, stmt.Keyword.Column, strings.ToUpper(stmt.KeywordLit))
	default:
		return sql3.NewErrInternalf("cannot analyze statement: %T", stmt)
	}
}

// CompileSQL parses sql as a single statement and compiles it.
func CompileSQL(ctx context.Context, logger logger.Logger, sql string) (*PlanOpQuery, error) {
	stmt, err := parser.NewParser(strings.NewReader(sql)).ParseStatement()
	if err != nil {
		return nil, err
	}
	op, err := NewExecutionPlanner(logger, sql).CompilePlan(ctx, stmt)
	if err != nil {
		return nil, err
	}
	query, ok := op.(*PlanOpQuery)
	if !ok {
		return nil, sql3.NewErrInternalf("unexpected root operator: %T", op)
	}
	return query, nil
}
