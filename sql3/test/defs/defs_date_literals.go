// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package defs

var dateLiterals = TestGroup{
	name: "date_literals",
	SQLTests: []SQLTest{
		{
			name: "iso",
			SQLs: sqls(
				"select cast('1992-09-20' as date) d",
				"select '1992-09-20'::date d",
				"select date '1992-09-20' d",
				"select '1992/09/20'::date d",
				"select '1992.9.20'::date d",
				"select '  1992-09-20  '::date as d;",
			),
			ExpHdrs: hdrs(hdr("d", "date")),
			ExpRows: rows(row("1992-09-20")),
		},
		{
			name: "leap_days",
			SQLs: sqls(
				"select date '1992-02-29' a, date '2000-02-29' b, '1900-1-1'::date c",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "date"),
				hdr("c", "date"),
			),
			ExpRows: rows(row("1992-02-29", "2000-02-29", "1900-01-01")),
		},
		{
			name: "invalid_leap_day",
			SQLs: sqls(
				"select cast('1993-02-29' as date)",
				"select '1993-02-29'::date",
			),
			ExpErr: `date field value out of range: "1993-02-29"`,
		},
		{
			name: "century_not_leap",
			SQLs: sqls(
				"select date '1900-02-29'",
			),
			ExpErr: `could not convert '1900-02-29' to 'date': date field value out of range: "1900-02-29"`,
		},
		{
			name: "bad_month",
			SQLs: sqls(
				"select '1992-13-01'::date",
			),
			ExpErr: "could not convert '1992-13-01' to 'date'",
		},
		{
			name: "empty",
			SQLs: sqls(
				"select ''::date",
				"select cast('' as date)",
			),
			ExpErr: "could not convert '' to 'date'",
		},
		{
			name: "era",
			SQLs: sqls(
				"select '0044-03-15 BC'::date a, '0000-01-01'::date b, '0001-01-01 AD'::date c",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "date"),
				hdr("c", "date"),
			),
			ExpRows: rows(row("0044-03-15 (BC)", "0001-01-01 (BC)", "0001-01-01")),
		},
		{
			name: "special",
			SQLs: sqls(
				"select 'infinity'::date a, '-infinity'::date b, 'EPOCH'::date c",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "date"),
				hdr("c", "date"),
			),
			ExpRows: rows(row("infinity", "-infinity", "1970-01-01")),
		},
		{
			name: "time_discarded",
			SQLs: sqls(
				"select '1992-01-01 12:34:56'::date d",
				"select '1992-01-01T23:59:59.999999Z'::date d",
			),
			ExpHdrs: hdrs(hdr("d", "date")),
			ExpRows: rows(row("1992-01-01")),
		},
		{
			name: "out_of_range",
			SQLs: sqls(
				"select '5881580-07-11'::date",
			),
			ExpErr: "value '5881580-07-11' is out of range for type 'date'",
		},
		{
			name: "conversions",
			SQLs: sqls(
				"select 0::date a, date '1970-01-02'::int b, date '1992-01-01'::timestamp c, date '2020-02-29'::string d",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "int"),
				hdr("c", "timestamp"),
				hdr("d", "string"),
			),
			ExpRows: rows(row("1970-01-01", int64(1), "1992-01-01 00:00:00", "2020-02-29")),
		},
		{
			name: "infinity_to_int",
			SQLs: sqls(
				"select 'infinity'::date::int",
			),
			ExpErr: "is out of range for type 'int'",
		},
	},
}
