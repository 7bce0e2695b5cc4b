// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package defs

var decimalLiterals = TestGroup{
	name: "decimal_literals",
	SQLTests: []SQLTest{
		{
			name: "scale",
			SQLs: sqls(
				"select '0.1'::decimal(3,3) a, '-1.239'::decimal(10,2) b, 12::decimal(5,2) c",
			),
			ExpHdrs: hdrs(
				hdr("a", "decimal(3,3)"),
				hdr("b", "decimal(10,2)"),
				hdr("c", "decimal(5,2)"),
			),
			ExpRows: rows(row("0.100", "-1.23", "12.00")),
		},
		{
			name: "default_type",
			SQLs: sqls(
				"select '12.345'::decimal d",
				"select cast('12.345' as numeric) d",
			),
			ExpHdrs: hdrs(hdr("d", "decimal(38,10)")),
			ExpRows: rows(row("12.3450000000")),
		},
		{
			name: "default_type_truncates",
			SQLs: sqls(
				"select '-0.123456789012'::decimal d",
			),
			ExpHdrs: hdrs(hdr("d", "decimal(38,10)")),
			ExpRows: rows(row("-0.1234567890")),
		},
		{
			name: "rescale_truncates",
			SQLs: sqls(
				"select 1.239::decimal(4,2) d",
				"select cast(1.2399 as decimal(4,2)) d",
			),
			ExpHdrs: hdrs(hdr("d", "decimal(4,2)")),
			ExpRows: rows(row("1.23")),
		},
		{
			name: "out_of_range",
			SQLs: sqls(
				"select '1'::decimal(3,3)",
				"select cast('1' as decimal(3,3))",
			),
			ExpErr: `value '1' is out of range for type 'decimal(3,3)': value "1" is out of range for DECIMAL(3,3)`,
		},
		{
			name: "invalid",
			SQLs: sqls(
				"select 'abc'::decimal(5,2)",
			),
			ExpErr: "could not convert 'abc' to 'decimal(5,2)'",
		},
		{
			name: "scale_exceeds_width",
			SQLs: sqls(
				"select '1'::decimal(3,4)",
				"select try_cast('1' as decimal(3,4))",
			),
			ExpErr: "invalid arguments for type 'DECIMAL(3,4)': decimal scale 4 must not exceed width 3",
		},
		{
			name: "width_too_large",
			SQLs: sqls(
				"select '1'::decimal(39,0)",
			),
			ExpErr: "invalid arguments for type 'DECIMAL(39,0)'",
		},
		{
			name: "to_other_types",
			SQLs: sqls(
				"select 1.5::int a, 0.0::bool b, 2.50::string c",
			),
			ExpHdrs: hdrs(
				hdr("a", "int"),
				hdr("b", "bool"),
				hdr("c", "string"),
			),
			ExpRows: rows(row(int64(1), false, "2.50")),
		},
	},
}

var numericLiterals = TestGroup{
	name: "numeric_literals",
	SQLTests: []SQLTest{
		{
			name: "integers",
			SQLs: sqls(
				"select 1 a, -9223372036854775808 b, 9223372036854775807 c",
			),
			ExpHdrs: hdrs(
				hdr("a", "int"),
				hdr("b", "int"),
				hdr("c", "int"),
			),
			ExpRows: rows(row(int64(1), int64(-9223372036854775808), int64(9223372036854775807))),
		},
		{
			name: "integer_overflow_is_decimal",
			SQLs: sqls(
				"select 9223372036854775808 a, -9223372036854775809 b",
			),
			ExpHdrs: hdrs(
				hdr("a", "decimal(19,0)"),
				hdr("b", "decimal(19,0)"),
			),
			ExpRows: rows(row("9223372036854775808", "-9223372036854775809")),
		},
		{
			name: "floats",
			SQLs: sqls(
				"select 1.50 a, 1e3 b, 0.5 c, 2.5e3 d",
			),
			ExpHdrs: hdrs(
				hdr("a", "decimal(3,2)"),
				hdr("b", "decimal(4,0)"),
				hdr("c", "decimal(1,1)"),
				hdr("d", "decimal(4,0)"),
			),
			ExpRows: rows(row("1.50", "1000", "0.5", "2500")),
		},
		{
			name: "literal_out_of_range",
			SQLs: sqls(
				"select 123456789012345678901234567890123456789",
			),
			ExpErr: "numeric literal '123456789012345678901234567890123456789' is out of range",
		},
	},
}
