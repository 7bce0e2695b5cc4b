// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package defs holds SQL statements and their expected results, shared by
// the sql3 tests and the logic test generator.
package defs

import (
	"fmt"
	"strings"
)

// TestGroups is the full list of groups run by TestSQL_Execute.
var TestGroups = []TestGroup{
	dateLiterals,
	timestampLiterals,
	decimalLiterals,
	numericLiterals,
	castScalars,
	tryCasts,
	unaryOps,
	statementErrors,
}

// TestGroup is a named list of SQLTests.
type TestGroup struct {
	name     string
	SQLTests []SQLTest
}

// Name returns the group name, falling back to its index.
func (g TestGroup) Name(i int) string {
	if g.name != "" {
		return g.name
	}
	return fmt.Sprintf("group-%d", i)
}

// SQLTest is a set of statements which all produce ExpHdrs and ExpRows, or
// all fail with an error containing ExpErr.
type SQLTest struct {
	name    string
	SQLs    []string
	ExpHdrs []Hdr
	ExpRows [][]interface{}
	ExpErr  string
}

// Name returns the test name, falling back to its index.
func (s SQLTest) Name(i int) string {
	if s.name != "" {
		return s.name
	}
	return fmt.Sprintf("test-%d", i)
}

// Hdr is an expected column: its name and its type description, e.g.
// "decimal(10,2)".
type Hdr struct {
	Name string
	Type string
}

func (h Hdr) String() string {
	return h.Name + " " + h.Type
}

func sqls(s ...string) []string {
	return s
}

func hdrs(h ...Hdr) []Hdr {
	return h
}

func hdr(name, typ string) Hdr {
	return Hdr{Name: name, Type: strings.ToLower(typ)}
}

func rows(r ...[]interface{}) [][]interface{} {
	return r
}

func row(v ...interface{}) []interface{} {
	return v
}
