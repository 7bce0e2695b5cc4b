// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/cli"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newLocalCommand(t *testing.T) (*cli.Command, *output) {
	t.Helper()
	out := &output{}
	cmd := cli.NewCommand(logger.NopLogger)
	cmd.Config.Local = true
	cmd.SetStdout(&out.stdout)
	cmd.Stderr = &out.stderr
	return cmd, out
}

func TestCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Query", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			select cast('1.50' as decimal(5,2)) as price,
			       date '2020-02-29' as day;
		`))))
		assert.Contains(t, out.stdout.String(), "price")
		assert.Contains(t, out.stdout.String(), "1.50")
		assert.Contains(t, out.stdout.String(), "2020-02-29")
		assert.Equal(t, "", out.stderr.String())
	})

	t.Run("MissingTerminator", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader("select try_cast('x' as int) as n")))
		assert.Contains(t, out.stdout.String(), "NULL")
	})

	t.Run("Errors", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			select cast(true as date);
			select cast('x' as int);
		`))))
		assert.Equal(t, heredoc.Doc(`
			Error: [1:8] 'bool' cannot be cast to 'date'
			Error: [1:8] could not convert 'x' to 'int': invalid integer "x"
		`), out.stderr.String())
	})

	t.Run("Variables", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			\set day 2021-03-04
			\set
			select :'day'::date as d;
			\unset day
			\set
		`))))
		assert.Contains(t, out.stdout.String(), "day = '2021-03-04'\n")
		assert.Contains(t, out.stdout.String(), "2021-03-04")
		assert.Equal(t, 1, strings.Count(out.stdout.String(), "day = "))
	})

	t.Run("Quit", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			\echo before
			\q
			\echo after
		`))))
		assert.Equal(t, "before\n", out.stdout.String())
	})

	t.Run("PrintAndReset", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			select 1
			\p
			\r
			\p
		`))))
		assert.Equal(t, "select 1\nQuery buffer reset (cleared).\nQuery buffer is empty.\n", out.stdout.String())
	})

	t.Run("Timing", func(t *testing.T) {
		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(heredoc.Doc(`
			\timing on
			select 1;
		`))))
		assert.Contains(t, out.stdout.String(), "Timing is on.\n")
		assert.Contains(t, out.stdout.String(), "Execution time: ")
	})

	t.Run("IncludeAndOutput", func(t *testing.T) {
		dir := t.TempDir()
		inc := filepath.Join(dir, "include.sql")
		require.NoError(t, os.WriteFile(inc, []byte("select\n  '2000-01-01'::date as y2k;\n"), 0o600))
		res := filepath.Join(dir, "results.txt")

		cmd, out := newLocalCommand(t)
		require.NoError(t, cmd.Execute(ctx, strings.NewReader(strings.Join([]string{
			`\o ` + res,
			`\i ` + inc,
			`\qecho done`,
			`\o`,
			`\echo back`,
		}, "\n"))))
		assert.Equal(t, "back\n", out.stdout.String())

		b, err := os.ReadFile(res)
		require.NoError(t, err)
		assert.Contains(t, string(b), "y2k")
		assert.Contains(t, string(b), "2000-01-01")
		assert.True(t, strings.HasSuffix(string(b), "done\n"))
	})

	t.Run("MetaError", func(t *testing.T) {
		cmd, _ := newLocalCommand(t)
		err := cmd.Execute(ctx, strings.NewReader(`\timing maybe`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unrecognized value "maybe"`)
	})
}

func TestCommand_HTTP(t *testing.T) {
	api, err := sqlcast.NewAPI()
	require.NoError(t, err)
	h, err := sqlcast.NewHandler(sqlcast.OptHandlerAPI(api))
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewCommand(logger.NopLogger)
	cmd.Config.Host = srv.URL
	cmd.Config.Port = ""
	cmd.SetStdout(&stdout)
	cmd.Stderr = &stderr

	require.NoError(t, cmd.Execute(context.Background(), strings.NewReader(heredoc.Doc(`
		select cast('1.50' as decimal(5,2)) as price, timestamp '2020-01-02 03:04:05' as ts;
		select cast('a' as money);
	`))))
	assert.Contains(t, stdout.String(), "1.50")
	assert.Contains(t, stdout.String(), "2020-01-02 03:04:05")
	assert.Equal(t, "Error: [1:20] unknown type 'money'\n", stderr.String())
}

func TestCommand_File(t *testing.T) {
	f := filepath.Join(t.TempDir(), "script.sql")
	require.NoError(t, os.WriteFile(f, []byte("select -5::int as n;\n"), 0o600))

	var stdout bytes.Buffer
	cmd := cli.NewCommand(logger.NopLogger)
	cmd.Config.Local = true
	cmd.Config.File = f
	cmd.SetStdout(&stdout)
	cmd.Stderr = &stdout

	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, stdout.String(), "-5")
}
