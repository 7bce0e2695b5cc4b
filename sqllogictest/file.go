// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package sqllogictest reads and runs logic test files: SQL statements paired
// with the results or errors they are expected to produce.
//
// A file is a list of records separated by blank lines. Lines starting with #
// are comments.
//
//	statement ok
//	select 1
//
//	statement error cannot be cast to 'date'
//	select cast(true as date)
//
//	query IT
//	select 1, 'a'
//	----
//	1
//	a
//
// The letters after query name the result column types. Results are listed
// one value per line, row by row. NULL is written as NULL and an empty string
// as (empty). A halt record stops the file.
package sqllogictest

import (
	"bufio"
	"io"
	"strings"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/parser"
)

// RecordKind distinguishes statements from queries.
type RecordKind int

const (
	RecordStatement RecordKind = iota
	RecordQuery
)

const (
	resultSeparator = "----"
	emptyValue      = "(empty)"
)

// Record is a single statement or query and its expectation.
type Record struct {
	Kind RecordKind

	// Line is the line number of the record's first line.
	Line int

	SQL string

	// ErrorMatch, when set, is a substring of the error the SQL must fail
	// with.
	ErrorMatch string
	ExpectErr  bool

	// Types has one letter per result column.
	Types string

	// Results are the expected values, one per column, row by row.
	Results []string
}

// File is a parsed logic test file.
type File struct {
	Name    string
	Records []*Record
}

// typeLetters maps base type names to the letters used in query records.
var typeLetters = map[string]byte{
	parser.BaseTypeVoid:      'N',
	parser.BaseTypeBool:      'B',
	parser.BaseTypeInt:       'I',
	parser.BaseTypeDecimal:   'R',
	parser.BaseTypeFloat:     'F',
	parser.BaseTypeString:    'T',
	parser.BaseTypeDate:      'D',
	parser.BaseTypeTimestamp: 'S',
	parser.BaseTypeTime:      'H',
	parser.BaseTypeDuration:  'U',
}

// TypeLetter returns the query record letter for a base type, or '?' for an
// unknown base type.
func TypeLetter(baseType string) byte {
	if l, ok := typeLetters[baseType]; ok {
		return l
	}
	return '?'
}

func validTypeLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		valid := false
		for _, l := range typeLetters {
			if s[i] == l {
				valid = true
				break
			}
		}
		if !valid {
			return false
		}
	}
	return true
}

// Parse reads a logic test file from r.
func Parse(name string, r io.Reader) (*File, error) {
	f := &File{Name: name}
	sc := bufio.NewScanner(r)
	lineNo := 0

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		rec := &Record{Line: lineNo}
		switch fields[0] {
		case "halt":
			return f, sc.Err()
		case "statement":
			rec.Kind = RecordStatement
			if len(fields) < 2 {
				return nil, errors.Errorf("%s:%d: statement requires ok or error", name, lineNo)
			}
			switch fields[1] {
			case "ok":
				if len(fields) > 2 {
					return nil, errors.Errorf("%s:%d: unexpected arguments to statement ok", name, lineNo)
				}
			case "error":
				rec.ExpectErr = true
				rec.ErrorMatch = errorMatch(fields)
			default:
				return nil, errors.Errorf("%s:%d: statement requires ok or error, got '%s'", name, lineNo, fields[1])
			}
		case "query":
			rec.Kind = RecordQuery
			if len(fields) < 2 {
				return nil, errors.Errorf("%s:%d: query requires column types", name, lineNo)
			}
			if fields[1] == "error" {
				rec.ExpectErr = true
				rec.ErrorMatch = errorMatch(fields)
			} else {
				rec.Types = fields[1]
				if !validTypeLetters(rec.Types) {
					return nil, errors.Errorf("%s:%d: invalid column types '%s'", name, lineNo, rec.Types)
				}
			}
		default:
			return nil, errors.Errorf("%s:%d: unknown record type '%s'", name, lineNo, fields[0])
		}

		// SQL runs until a blank line, the result separator or EOF.
		var sql []string
		sawSeparator := false
		for {
			line, ok := next()
			if !ok || strings.TrimSpace(line) == "" {
				break
			}
			if line == resultSeparator {
				sawSeparator = true
				break
			}
			sql = append(sql, line)
		}
		if len(sql) == 0 {
			return nil, errors.Errorf("%s:%d: record has no SQL", name, rec.Line)
		}
		rec.SQL = strings.Join(sql, "\n")

		if sawSeparator {
			if rec.Kind != RecordQuery || rec.ExpectErr {
				return nil, errors.Errorf("%s:%d: only queries may list results", name, rec.Line)
			}
			for {
				line, ok := next()
				if !ok || line == "" {
					break
				}
				rec.Results = append(rec.Results, line)
			}
		}
		f.Records = append(f.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return f, nil
}

// errorMatch returns the expected error text of a "statement error" or
// "query error" line, given its fields.
func errorMatch(fields []string) string {
	if len(fields) < 3 {
		return ""
	}
	return strings.Join(fields[2:], " ")
}

// formatResult renders an expected or actual value as a result line.
func formatResult(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}
