// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package defs

var castScalars = TestGroup{
	name: "cast_scalars",
	SQLTests: []SQLTest{
		{
			name: "to_int",
			SQLs: sqls(
				"select '42'::int a, ' 42 '::integer b, true::bigint c, 42::int d",
			),
			ExpHdrs: hdrs(
				hdr("a", "int"),
				hdr("b", "int"),
				hdr("c", "int"),
				hdr("d", "int"),
			),
			ExpRows: rows(row(int64(42), int64(42), int64(1), int64(42))),
		},
		{
			name: "int_out_of_range",
			SQLs: sqls(
				"select '9223372036854775808'::int",
			),
			ExpErr: "value '9223372036854775808' is out of range for type 'int'",
		},
		{
			name: "invalid_int",
			SQLs: sqls(
				"select 'x'::int",
				"select cast('x' as int)",
			),
			ExpErr: `could not convert 'x' to 'int': invalid integer "x"`,
		},
		{
			name: "to_bool",
			SQLs: sqls(
				"select 'yes'::bool a, 'OFF'::boolean b, 0::bool c, 7::bool d",
			),
			ExpHdrs: hdrs(
				hdr("a", "bool"),
				hdr("b", "bool"),
				hdr("c", "bool"),
				hdr("d", "bool"),
			),
			ExpRows: rows(row(true, false, false, true)),
		},
		{
			name: "invalid_bool",
			SQLs: sqls(
				"select 'maybe'::bool",
			),
			ExpErr: `could not convert 'maybe' to 'bool': invalid boolean "maybe"`,
		},
		{
			name: "to_string",
			SQLs: sqls(
				"select 1::string a, false::varchar b, 'x'::text c",
			),
			ExpHdrs: hdrs(
				hdr("a", "string"),
				hdr("b", "string"),
				hdr("c", "string"),
			),
			ExpRows: rows(row("1", "false", "x")),
		},
		{
			name: "durations",
			SQLs: sqls(
				"select '90s'::duration a, '1500ms'::duration::int b, 3::duration c, '5 ns'::duration::string d",
			),
			ExpHdrs: hdrs(
				hdr("a", "duration"),
				hdr("b", "int"),
				hdr("c", "duration"),
				hdr("d", "string"),
			),
			ExpRows: rows(row("90s", int64(1500), "3ms", "5ns")),
		},
		{
			name: "duration_int_milliseconds",
			SQLs: sqls(
				"select '-1500ms'::duration::int i",
				"select cast(cast('-1500000us' as duration) as int) i",
			),
			ExpHdrs: hdrs(hdr("i", "int")),
			ExpRows: rows(row(int64(-1500))),
		},
		{
			name: "times",
			SQLs: sqls(
				"select time '12:30:45.5' a, '7:05'::time::string b, '00:00:01.5'::time::int c, 3600000000::time d",
			),
			ExpHdrs: hdrs(
				hdr("a", "time"),
				hdr("b", "string"),
				hdr("c", "int"),
				hdr("d", "time"),
			),
			ExpRows: rows(row("12:30:45.5", "07:05:00", int64(1500000), "01:00:00")),
		},
		{
			name: "invalid_time",
			SQLs: sqls(
				"select '24:00'::time",
				"select cast('12:61' as time)",
			),
			ExpErr: "time field value out of range",
		},
		{
			name: "try_cast_time",
			SQLs: sqls(
				"select try_cast('noon' as time) t",
			),
			ExpHdrs: hdrs(hdr("t", "time")),
			ExpRows: rows(row(nil)),
		},
		{
			name: "floats",
			SQLs: sqls(
				"select '1.25'::float a, 1.5::double b, '-2.75'::real::int c, cast(2.5::float as decimal(4,2)) d, true::float e",
			),
			ExpHdrs: hdrs(
				hdr("a", "float"),
				hdr("b", "float"),
				hdr("c", "int"),
				hdr("d", "decimal(4,2)"),
				hdr("e", "float"),
			),
			ExpRows: rows(row(1.25, 1.5, int64(-2), "2.50", float64(1))),
		},
		{
			name: "invalid_float",
			SQLs: sqls(
				"select 'nan'::float",
			),
			ExpErr: `could not convert 'nan' to 'float': invalid float "nan"`,
		},
		{
			name: "invalid_duration",
			SQLs: sqls(
				"select '90 minutes'::duration",
			),
			ExpErr: "could not convert '90 minutes' to 'duration'",
		},
		{
			name: "null",
			SQLs: sqls(
				"select cast(null as date) a, null::decimal(5,2) b, try_cast(null as int) c",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "decimal(5,2)"),
				hdr("c", "int"),
			),
			ExpRows: rows(row(nil, nil, nil)),
		},
		{
			name: "nested",
			SQLs: sqls(
				"select cast(cast('2020-03-04 05:06:07' as timestamp) as date) d",
				"select '2020-03-04 05:06:07'::timestamp::date d",
			),
			ExpHdrs: hdrs(hdr("d", "date")),
			ExpRows: rows(row("2020-03-04")),
		},
		{
			name: "incompatible",
			SQLs: sqls(
				"select cast(true as date)",
				"select true::date",
			),
			ExpErr: "'bool' cannot be cast to 'date'",
		},
		{
			name: "incompatible_duration",
			SQLs: sqls(
				"select '1s'::duration::date",
			),
			ExpErr: "'duration' cannot be cast to 'date'",
		},
	},
}

var tryCasts = TestGroup{
	name: "try_cast",
	SQLTests: []SQLTest{
		{
			name: "failures_are_null",
			SQLs: sqls(
				"select try_cast('1993-02-29' as date) a, try_cast('' as date) b, try_cast('    ' as date) c, try_cast('1' as decimal(3,3)) d, try_cast('x' as int) e",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "date"),
				hdr("c", "date"),
				hdr("d", "decimal(3,3)"),
				hdr("e", "int"),
			),
			ExpRows: rows(row(nil, nil, nil, nil, nil)),
		},
		{
			name: "successes",
			SQLs: sqls(
				"select try_cast('2000-02-29' as date) a, try_cast('0.1' as decimal(3,3)) b",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "decimal(3,3)"),
			),
			ExpRows: rows(row("2000-02-29", "0.100")),
		},
		{
			name: "incompatible_is_null",
			SQLs: sqls(
				"select try_cast(true as date) a",
			),
			ExpHdrs: hdrs(hdr("a", "date")),
			ExpRows: rows(row(nil)),
		},
		{
			name: "inner_strict_cast_fails",
			SQLs: sqls(
				"select try_cast(cast('x' as int) as string)",
			),
			ExpErr: `could not convert 'x' to 'int'`,
		},
		{
			name: "unknown_type",
			SQLs: sqls(
				"select try_cast('1' as money)",
			),
			ExpErr: "unknown type 'money'",
		},
	},
}
