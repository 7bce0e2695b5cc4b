// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser_test

import (
	"testing"

	"github.com/featurebasedb/sqlcast/sql3/parser"
)

func TestPos_String(t *testing.T) {
	if got, want := (parser.Pos{}).String(), `-`; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
	if got, want := (parser.Pos{Offset: 4, Line: 2, Column: 3}).String(), `2:3`; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
}

func TestLookup(t *testing.T) {
	for s, want := range map[string]parser.Token{
		"select":   parser.SELECT,
		"Try_Cast": parser.TRY_CAST,
		"date":     parser.DATE,
		"decimal":  parser.IDENT,
		"foo":      parser.IDENT,
	} {
		if got := parser.Lookup(s); got != want {
			t.Fatalf("Lookup(%q)=%s, want %s", s, got, want)
		}
	}
}

func TestToken_Class(t *testing.T) {
	if !parser.STRING.IsLiteral() || parser.CAST.IsLiteral() {
		t.Fatal("unexpected IsLiteral")
	}
	if !parser.CAST.IsKeyword() || parser.IDENT.IsKeyword() {
		t.Fatal("unexpected IsKeyword")
	}
	if got := parser.Token(-1).String(); got != "" {
		t.Fatalf("String()=%q, want empty", got)
	}
}
