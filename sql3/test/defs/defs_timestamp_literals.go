// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package defs

var timestampLiterals = TestGroup{
	name: "timestamp_literals",
	SQLTests: []SQLTest{
		{
			name: "offsets",
			SQLs: sqls(
				"select '1992-01-01 12:00:00+02'::timestamp ts",
				"select timestamp '1992-01-01 12:30:00 +02:30' ts",
				"select cast('1992-01-01 10:00:00Z' as timestamp) ts",
			),
			ExpHdrs: hdrs(hdr("ts", "timestamp")),
			ExpRows: rows(row("1992-01-01 10:00:00")),
		},
		{
			name: "offset_crosses_midnight",
			SQLs: sqls(
				"select timestamp '1992-01-01 01:00:00+03' ts",
			),
			ExpHdrs: hdrs(hdr("ts", "timestamp")),
			ExpRows: rows(row("1991-12-31 22:00:00")),
		},
		{
			name: "fractions",
			SQLs: sqls(
				"select '1992-01-01 12:34:56.123456789'::timestamp a, '1992-01-01 12:34:56.000100'::timestamp b, '1992-01-01T12:34:56'::timestamp c",
			),
			ExpHdrs: hdrs(
				hdr("a", "timestamp"),
				hdr("b", "timestamp"),
				hdr("c", "timestamp"),
			),
			ExpRows: rows(row("1992-01-01 12:34:56.123456", "1992-01-01 12:34:56.0001", "1992-01-01 12:34:56")),
		},
		{
			name: "date_only",
			SQLs: sqls(
				"select '1992-01-01'::timestamp ts",
				"select date '1992-01-01'::timestamp ts",
			),
			ExpHdrs: hdrs(hdr("ts", "timestamp")),
			ExpRows: rows(row("1992-01-01 00:00:00")),
		},
		{
			name: "special",
			SQLs: sqls(
				"select 'epoch'::timestamp a, 'infinity'::timestamp b, '-infinity'::timestamp c, 0::timestamp d",
			),
			ExpHdrs: hdrs(
				hdr("a", "timestamp"),
				hdr("b", "timestamp"),
				hdr("c", "timestamp"),
				hdr("d", "timestamp"),
			),
			ExpRows: rows(row("1970-01-01 00:00:00", "infinity", "-infinity", "1970-01-01 00:00:00")),
		},
		{
			name: "conversions",
			SQLs: sqls(
				"select timestamp '1992-01-01 23:59:59'::date a, timestamp '1970-01-01 00:01:00'::int b",
			),
			ExpHdrs: hdrs(
				hdr("a", "date"),
				hdr("b", "int"),
			),
			ExpRows: rows(row("1992-01-01", int64(60))),
		},
		{
			name: "invalid_hour",
			SQLs: sqls(
				"select '1992-01-01 24:00:00'::timestamp",
			),
			ExpErr: "could not convert '1992-01-01 24:00:00' to 'timestamp'",
		},
		{
			name: "out_of_range",
			SQLs: sqls(
				"select '294247-01-10 04:00:54.775807'::timestamp",
			),
			ExpErr: "is out of range for type 'timestamp'",
		},
	},
}
