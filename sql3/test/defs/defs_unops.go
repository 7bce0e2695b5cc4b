// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package defs

var unaryOps = TestGroup{
	name: "unary_ops",
	SQLTests: []SQLTest{
		{
			name: "minus",
			SQLs: sqls(
				"select -'1'::int a, -(1.5) b, -null c, - -2 d, -'90s'::duration e",
			),
			ExpHdrs: hdrs(
				hdr("a", "int"),
				hdr("b", "decimal(2,1)"),
				hdr("c", "void"),
				hdr("d", "int"),
				hdr("e", "duration"),
			),
			ExpRows: rows(row(int64(-1), "-1.5", nil, int64(2), "-90s")),
		},
		{
			name: "plus",
			SQLs: sqls(
				"select +1 a, +1.25 b",
			),
			ExpHdrs: hdrs(
				hdr("a", "int"),
				hdr("b", "decimal(3,2)"),
			),
			ExpRows: rows(row(int64(1), "1.25")),
		},
		{
			name: "cast_binds_tighter",
			SQLs: sqls(
				"select -'2020-01-01'::date",
			),
			ExpErr: "operator '-' incompatible with type 'date'",
		},
		{
			name: "string_operand",
			SQLs: sqls(
				"select -'1'",
				"select +'1'",
			),
			ExpErr: "incompatible with type 'string'",
		},
		{
			name: "bool_operand",
			SQLs: sqls(
				"select -true",
			),
			ExpErr: "operator '-' incompatible with type 'bool'",
		},
		{
			name: "overflow",
			SQLs: sqls(
				"select -(-9223372036854775808)",
			),
			ExpErr: "negating -9223372036854775808 overflows 'int'",
		},
	},
}

var statementErrors = TestGroup{
	name: "statement_errors",
	SQLTests: []SQLTest{
		{
			name: "unknown_identifier",
			SQLs: sqls(
				"select 1, x",
			),
			ExpErr: "[1:11] unknown identifier 'x'",
		},
		{
			name: "from",
			SQLs: sqls(
				"select 1 from t",
			),
			ExpErr: "[1:10] FROM clause is not supported",
		},
		{
			name: "insert",
			SQLs: sqls(
				"insert into t values (1)",
			),
			ExpErr: "[1:1] statement 'INSERT' is not supported",
		},
		{
			name: "unterminated_string",
			SQLs: sqls(
				"select 'abc",
			),
			ExpErr: "unterminated string literal",
		},
		{
			name: "missing_type",
			SQLs: sqls(
				"select cast('1' as)",
			),
			ExpErr: "expected type name",
		},
	},
}
