// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner_test

import (
	"context"
	"testing"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner"
	planner_types "github.com/featurebasedb/sqlcast/sql3/planner/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryRows compiles and runs sql, returning each value as SQL text.
func queryRows(t *testing.T, sql string) (planner_types.Schema, [][]string, error) {
	t.Helper()
	ctx := context.Background()
	query, err := planner.CompileSQL(ctx, logger.NopLogger, sql)
	if err != nil {
		return nil, nil, err
	}
	rows, err := query.Rows(ctx)
	if err != nil {
		return nil, nil, err
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = planner.FormatValue(v)
		}
	}
	return query.Schema(), out, nil
}

func TestPlanner_Select(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		columns []*planner_types.PlannerColumn
		rows    [][]string
	}{
		{
			name: "DateCasts",
			sql:  `SELECT '1992-02-29'::DATE, CAST('2000-02-29' AS DATE) AS d, '1900-1-1'::date`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "'1992-02-29'::DATE", Type: parser.NewDataTypeDate()},
				{ColumnName: "d", Type: parser.NewDataTypeDate()},
				{ColumnName: "'1900-1-1'::DATE", Type: parser.NewDataTypeDate()},
			},
			rows: [][]string{{"1992-02-29", "2000-02-29", "1900-01-01"}},
		},
		{
			name: "TryCastBlankDates",
			sql:  `select try_cast('' as date), try_cast('    ' as date) as blank;`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "TRY_CAST('' AS DATE)", Type: parser.NewDataTypeDate()},
				{ColumnName: "blank", Type: parser.NewDataTypeDate()},
			},
			rows: [][]string{{"NULL", "NULL"}},
		},
		{
			name: "DecimalScale",
			sql:  `select '0.1'::decimal(3,3) a, try_cast('1' as decimal(3,3)) b, '-1.239'::decimal(10,2) c`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeDecimal(3, 3)},
				{ColumnName: "b", Type: parser.NewDataTypeDecimal(3, 3)},
				{ColumnName: "c", Type: parser.NewDataTypeDecimal(10, 2)},
			},
			rows: [][]string{{"0.100", "NULL", "-1.23"}},
		},
		{
			name: "Literals",
			sql:  `select 1 a, -9223372036854775808 b, 9223372036854775808 c, 1.50 d, 1e3 e, 'it''s' f, null g, true h`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeInt()},
				{ColumnName: "b", Type: parser.NewDataTypeInt()},
				{ColumnName: "c", Type: parser.NewDataTypeDecimal(19, 0)},
				{ColumnName: "d", Type: parser.NewDataTypeDecimal(3, 2)},
				{ColumnName: "e", Type: parser.NewDataTypeDecimal(4, 0)},
				{ColumnName: "f", Type: parser.NewDataTypeString()},
				{ColumnName: "g", Type: parser.NewDataTypeVoid()},
				{ColumnName: "h", Type: parser.NewDataTypeBool()},
			},
			rows: [][]string{{"1", "-9223372036854775808", "9223372036854775808", "1.50", "1000", "it's", "NULL", "true"}},
		},
		{
			name: "TypedLiterals",
			sql:  `select date '1992-01-01' a, timestamp '2020-01-01 10:00:00+02:00' b`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeDate()},
				{ColumnName: "b", Type: parser.NewDataTypeTimestamp()},
			},
			rows: [][]string{{"1992-01-01", "2020-01-01 08:00:00"}},
		},
		{
			name: "UnaryMinus",
			sql:  `select -'1'::int a, -(1.5) b, -null c, - -2 d`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeInt()},
				{ColumnName: "b", Type: parser.NewDataTypeDecimal(2, 1)},
				{ColumnName: "c", Type: parser.NewDataTypeVoid()},
				{ColumnName: "d", Type: parser.NewDataTypeInt()},
			},
			rows: [][]string{{"-1", "-1.5", "NULL", "2"}},
		},
		{
			name: "NestedCasts",
			sql:  `select cast(cast('2020-03-04 05:06:07' as timestamp) as date) a, '1500ms'::duration::int b`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeDate()},
				{ColumnName: "b", Type: parser.NewDataTypeInt()},
			},
			rows: [][]string{{"2020-03-04", "1"}},
		},
		{
			name: "TryCastIncompatible",
			sql:  `select try_cast(true as date) a`,
			columns: []*planner_types.PlannerColumn{
				{ColumnName: "a", Type: parser.NewDataTypeDate()},
			},
			rows: [][]string{{"NULL"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, rows, err := queryRows(t, tt.sql)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.columns, []*planner_types.PlannerColumn(schema)); diff != "" {
				t.Fatal(diff)
			}
			if diff := cmp.Diff(tt.rows, rows); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestPlanner_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		code errors.Code
		msg  string
	}{
		{
			name: "DecimalOutOfRange",
			sql:  `select '1'::decimal(3,3)`,
			code: sql3.ErrOutOfRange,
			msg:  `[1:11] value '1' is out of range for type 'decimal(3,3)': value "1" is out of range for DECIMAL(3,3)`,
		},
		{
			name: "InvalidLeapDay",
			sql:  `select cast('1993-02-29' as date)`,
			code: sql3.ErrInvalidCast,
			msg:  `[1:8] could not convert '1993-02-29' to 'date': date field value out of range: "1993-02-29"`,
		},
		{
			name: "InvalidTypedLiteral",
			sql:  `select date '1900-02-29'`,
			code: sql3.ErrInvalidCast,
			msg:  `[1:8] could not convert '1900-02-29' to 'date': date field value out of range: "1900-02-29"`,
		},
		{
			name: "IncompatibleCast",
			sql:  `select cast(true as date)`,
			code: sql3.ErrInvalidCast,
			msg:  `[1:8] 'bool' cannot be cast to 'date'`,
		},
		{
			name: "InvalidTypeArgs",
			sql:  `select try_cast('1' as decimal(3,4))`,
			code: sql3.ErrInvalidTypeArgs,
			msg:  `[1:24] invalid arguments for type 'DECIMAL(3,4)': decimal scale 4 must not exceed width 3`,
		},
		{
			name: "UnknownType",
			sql:  `select '1'::money`,
			code: sql3.ErrUnknownType,
			msg:  `[1:13] unknown type 'money'`,
		},
		{
			name: "UnknownIdentifier",
			sql:  `select 1, x`,
			code: sql3.ErrUnknownIdentifier,
			msg:  `[1:11] unknown identifier 'x'`,
		},
		{
			name: "UnaryOnString",
			sql:  `select -'1'`,
			code: sql3.ErrTypeIncompatibleWithArithmeticOperator,
			msg:  `[1:8] operator '-' incompatible with type 'string'`,
		},
		{
			name: "NegationOverflow",
			sql:  `select -(-9223372036854775808)`,
			code: sql3.ErrOutOfRange,
			msg:  `[1:8] negating -9223372036854775808 overflows 'int'`,
		},
		{
			name: "LiteralOutOfRange",
			sql:  `select 123456789012345678901234567890123456789`,
			code: sql3.ErrLiteralOutOfRange,
			msg:  `[1:8] numeric literal '123456789012345678901234567890123456789' is out of range`,
		},
		{
			name: "UnsupportedStatement",
			sql:  `insert into t values (1)`,
			code: sql3.ErrUnsupportedStatement,
			msg:  `[1:1] statement 'INSERT' is not supported`,
		},
		{
			name: "FromClause",
			sql:  `select 1 from t`,
			code: sql3.ErrUnsupportedStatement,
			msg:  `[1:10] FROM clause is not supported`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queryRows(t, tt.sql)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestPlanner_Plan(t *testing.T) {
	ctx := context.Background()
	query, err := planner.CompileSQL(ctx, logger.NopLogger, `select cast('1' as int) a, try_cast('2' as decimal(5,2))::string b, 3 c`)
	require.NoError(t, err)

	plan := query.Plan()
	assert.Equal(t, "*planner.PlanOpQuery", plan["_op"])
	assert.Equal(t, []string{"'a', '', 'int'", "'b', '', 'string'", "'c', '', 'int'"}, plan["_schema"])

	child, ok := plan["child"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "*planner.PlanOpProjection", child["_op"])

	assert.Equal(t, []string{"int", "string", "decimal"}, planner.CastTargets(query))
	assert.Empty(t, query.Warnings())
}

func TestPlanner_Logging(t *testing.T) {
	ctx := context.Background()
	log := logger.NewBufferLogger()
	query, err := planner.CompileSQL(ctx, log, `select 1`)
	require.NoError(t, err)
	_, err = query.Rows(ctx)
	require.NoError(t, err)

	buf, err := log.ReadAll()
	require.NoError(t, err)
	assert.Contains(t, string(buf), "query complete: 1 row(s)")
}
