// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqllogictest_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/sql3/test/defs"
	"github.com/featurebasedb/sqlcast/sqllogictest"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAPI(t *testing.T) *sqlcast.API {
	t.Helper()
	api, err := sqlcast.NewAPI()
	require.NoError(t, err)
	return api
}

func TestParse(t *testing.T) {
	t.Run("Records", func(t *testing.T) {
		f, err := sqllogictest.Parse("x.test", strings.NewReader(heredoc.Doc(`
			# comment
			statement ok
			select 1

			statement error cannot be cast
			select cast(true
			  as date)

			query IT
			select 1, ''
			----
			1
			(empty)

			query R
			select 1.5
			----
			1.5
		`)))
		require.NoError(t, err)

		exp := []*sqllogictest.Record{
			{Kind: sqllogictest.RecordStatement, Line: 2, SQL: "select 1"},
			{Kind: sqllogictest.RecordStatement, Line: 5, SQL: "select cast(true\n  as date)", ExpectErr: true, ErrorMatch: "cannot be cast"},
			{Kind: sqllogictest.RecordQuery, Line: 9, SQL: "select 1, ''", Types: "IT", Results: []string{"1", "(empty)"}},
			{Kind: sqllogictest.RecordQuery, Line: 15, SQL: "select 1.5", Types: "R", Results: []string{"1.5"}},
		}
		if diff := cmp.Diff(exp, f.Records); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("ErrorMatchSpacing", func(t *testing.T) {
		f, err := sqllogictest.Parse("x.test", strings.NewReader("statement  error   cannot be cast\nselect cast(true as date)\n\nquery\terror bad\nselect 1\n"))
		require.NoError(t, err)
		require.Len(t, f.Records, 2)
		assert.Equal(t, "cannot be cast", f.Records[0].ErrorMatch)
		assert.True(t, f.Records[0].ExpectErr)
		assert.Equal(t, "bad", f.Records[1].ErrorMatch)
	})

	t.Run("Halt", func(t *testing.T) {
		f, err := sqllogictest.Parse("x.test", strings.NewReader("statement ok\nselect 1\n\nhalt\n\nbogus\n"))
		require.NoError(t, err)
		assert.Len(t, f.Records, 1)
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name   string
			input  string
			expErr string
		}{
			{name: "Unknown", input: "select 1\n", expErr: "x.test:1: unknown record type 'select'"},
			{name: "StatementArg", input: "statement maybe\nselect 1\n", expErr: "statement requires ok or error, got 'maybe'"},
			{name: "StatementOkArgs", input: "statement ok extra\nselect 1\n", expErr: "unexpected arguments to statement ok"},
			{name: "QueryTypes", input: "query XZ\nselect 1\n", expErr: "invalid column types 'XZ'"},
			{name: "NoSQL", input: "statement ok\n\n", expErr: "x.test:1: record has no SQL"},
			{name: "StatementResults", input: "statement ok\nselect 1\n----\n1\n", expErr: "only queries may list results"},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := sqllogictest.Parse("x.test", strings.NewReader(test.input))
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.expErr)
			})
		}
	})
}

func TestRunner_Testdata(t *testing.T) {
	var out bytes.Buffer
	r := sqllogictest.NewRunner(mustAPI(t), sqllogictest.OptRunnerOutput(&out))

	results, err := r.Run(context.Background(), []string{"testdata"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.OK(), "%s: %+v", res.File, res.Failures)
	}
	assert.Equal(t, 5, results[0].Passed)
	assert.Equal(t, 10, results[1].Passed)

	var summary bytes.Buffer
	assert.True(t, sqllogictest.Summarize(&summary, results))
	assert.Contains(t, summary.String(), "2 files, 15 records")
}

func TestRunner_Failures(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "suite/bad.test", []byte(heredoc.Doc(`
		query I
		select 2
		----
		3

		query T
		select 1
		----
		1

		statement error nope
		select 1

		statement ok
		select cast('x' as int)

		statement ok
		select 1
	`)), 0o644))

	var out bytes.Buffer
	r := sqllogictest.NewRunner(mustAPI(t), sqllogictest.OptRunnerFs(fs), sqllogictest.OptRunnerOutput(&out))
	results, err := r.Run(context.Background(), []string{"suite/*.test"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 1, res.Passed)
	require.Len(t, res.Failures, 4)
	assert.Equal(t, 1, res.Failures[0].Line)
	assert.Contains(t, res.Failures[0].Message, "results differ")
	assert.Equal(t, "expected column types T, got I", res.Failures[1].Message)
	assert.Equal(t, "expected an error, statement succeeded", res.Failures[2].Message)
	assert.Contains(t, res.Failures[3].Message, "unexpected error: [1:8] could not convert 'x' to 'int'")

	assert.Contains(t, out.String(), "FAIL")
	assert.Contains(t, out.String(), "suite/bad.test (1 passed, 4 failed)")

	var summary bytes.Buffer
	assert.False(t, sqllogictest.Summarize(&summary, results))
	assert.Contains(t, summary.String(), "1 of 1 files, 4 of 5 records")
}

func TestRunner_Expand(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"a/1.test", "a/b/2.test", "a/notes.txt", "c.test"} {
		require.NoError(t, afero.WriteFile(fs, name, []byte("statement ok\nselect 1\n"), 0o644))
	}
	r := sqllogictest.NewRunner(mustAPI(t), sqllogictest.OptRunnerFs(fs))

	files, err := r.Expand([]string{"c.test", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.test", "a/b/2.test", "c.test"}, files)

	_, err = r.Expand([]string{"missing.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file: missing.test")
}

func TestGenerateAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	paths, err := sqllogictest.GenerateAll(fs, "generated", defs.TestGroups)
	require.NoError(t, err)
	require.Len(t, paths, len(defs.TestGroups))

	b, err := afero.ReadFile(fs, paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# "+defs.TestGroups[0].Name(0)+"\n"))

	// Every generated record passes against the implementation it was
	// written from.
	var out bytes.Buffer
	r := sqllogictest.NewRunner(mustAPI(t), sqllogictest.OptRunnerFs(fs), sqllogictest.OptRunnerOutput(&out))
	results, err := r.Run(context.Background(), []string{"generated"})
	require.NoError(t, err)
	require.Len(t, results, len(defs.TestGroups))
	for _, res := range results {
		assert.True(t, res.OK(), "%s: %+v", res.File, res.Failures)
		assert.NotZero(t, res.Passed, res.File)
	}
}
