// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser_test

import (
	"strings"
	"testing"

	"github.com/featurebasedb/sqlcast/sql3/parser"
)

func TestScanner_Scan(t *testing.T) {
	t.Run("IDENT", func(t *testing.T) {
		t.Run("Unquoted", func(t *testing.T) {
			AssertScan(t, `foo_BAR123`, parser.IDENT, `foo_BAR123`)
		})
		t.Run("Quoted", func(t *testing.T) {
			AssertScan(t, `"crazy ~!#*&# column name"" foo"`, parser.QIDENT, `crazy ~!#*&# column name" foo`)
		})
		t.Run("NoEndQuote", func(t *testing.T) {
			AssertScan(t, `"unfinished`, parser.ILLEGAL, `"unfinished`)
		})
		t.Run("Underscore", func(t *testing.T) {
			AssertScan(t, `_x`, parser.IDENT, `_x`)
		})
	})

	t.Run("KEYWORD", func(t *testing.T) {
		AssertScan(t, `select`, parser.SELECT, `select`)
		AssertScan(t, `TRY_CAST`, parser.TRY_CAST, `TRY_CAST`)
	})

	t.Run("STRING", func(t *testing.T) {
		t.Run("OK", func(t *testing.T) {
			AssertScan(t, `'this is ''a'' string'`, parser.STRING, `this is 'a' string`)
		})
		t.Run("Empty", func(t *testing.T) {
			AssertScan(t, `''`, parser.STRING, ``)
		})
		t.Run("NoEndQuote", func(t *testing.T) {
			AssertScan(t, `'unfinished`, parser.UNTERMSTRING, `'unfinished`)
		})
		t.Run("NoEndQuoteNL", func(t *testing.T) {
			AssertScan(t, "'unfinished\n", parser.UNTERMSTRING, `'unfinished`)
		})
	})

	t.Run("INTEGER", func(t *testing.T) {
		AssertScan(t, `123`, parser.INTEGER, `123`)
		AssertScan(t, `007`, parser.INTEGER, `007`)
	})

	t.Run("FLOAT", func(t *testing.T) {
		AssertScan(t, `123.456`, parser.FLOAT, `123.456`)
		AssertScan(t, `123.`, parser.FLOAT, `123.`)
		AssertScan(t, `.5`, parser.FLOAT, `.5`)
		AssertScan(t, `1e10`, parser.FLOAT, `1e10`)
		AssertScan(t, `1.5E+2`, parser.FLOAT, `1.5E+2`)
		AssertScan(t, `2e-3`, parser.FLOAT, `2e-3`)
	})

	t.Run("ILLEGAL", func(t *testing.T) {
		AssertScan(t, `1e`, parser.ILLEGAL, `1e`)
		AssertScan(t, `1e+`, parser.ILLEGAL, `1e+`)
		AssertScan(t, `.`, parser.ILLEGAL, `.`)
		AssertScan(t, `:`, parser.ILLEGAL, `:`)
		AssertScan(t, "^", parser.ILLEGAL, "^")
	})

	t.Run("WS", func(t *testing.T) {
		AssertScan(t, " \t\n", parser.WS, " \t\n")
		AssertScan(t, "-- comment\nfoo", parser.WS, "")
	})

	t.Run("EOF", func(t *testing.T) {
		AssertScan(t, "", parser.EOF, "")
	})

	t.Run("Operators", func(t *testing.T) {
		AssertScan(t, ";", parser.SEMI, ";")
		AssertScan(t, "(", parser.LP, "(")
		AssertScan(t, ")", parser.RP, ")")
		AssertScan(t, ",", parser.COMMA, ",")
		AssertScan(t, "+", parser.PLUS, "+")
		AssertScan(t, "-", parser.MINUS, "-")
		AssertScan(t, "*", parser.STAR, "*")
		AssertScan(t, "::", parser.DOUBLECOLON, "::")
	})
}

func TestScanner_Positions(t *testing.T) {
	s := parser.NewScanner(strings.NewReader("a\n  'b'::c"))
	type result struct {
		pos parser.Pos
		tok parser.Token
	}
	want := []result{
		{parser.Pos{Offset: 0, Line: 1, Column: 1}, parser.IDENT},
		{parser.Pos{Offset: 1, Line: 1, Column: 2}, parser.WS},
		{parser.Pos{Offset: 4, Line: 2, Column: 3}, parser.STRING},
		{parser.Pos{Offset: 7, Line: 2, Column: 6}, parser.DOUBLECOLON},
		{parser.Pos{Offset: 9, Line: 2, Column: 8}, parser.IDENT},
		{parser.Pos{Offset: 10, Line: 2, Column: 9}, parser.EOF},
	}
	for i, w := range want {
		pos, tok, lit := s.Scan()
		if pos != w.pos || tok != w.tok {
			t.Fatalf("%d. Scan()=<%s,%s,%q>, want <%s,%s>", i, pos, tok, lit, w.pos, w.tok)
		}
	}
}

// AssertScan asserts the value of the first scan to s.
func AssertScan(tb testing.TB, s string, expectedTok parser.Token, expectedLit string) {
	tb.Helper()
	_, tok, lit := parser.NewScanner(strings.NewReader(s)).Scan()
	if tok != expectedTok || lit != expectedLit {
		tb.Fatalf("Scan(%q)=<%s,%s>, want <%s,%s>", s, tok, lit, expectedTok, expectedLit)
	}
}
