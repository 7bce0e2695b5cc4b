// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/cli"
	"github.com/featurebasedb/sqlcast/errors"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatArrow = "arrow"
)

// EvalCommand evaluates a single statement in process and prints the
// result.
type EvalCommand struct {
	*sqlcast.CmdIO

	// SQL is the statement to run. When empty it is read from Stdin.
	SQL string

	// Format is one of table, json or arrow.
	Format string

	// IncludePlan adds the query plan to json output.
	IncludePlan bool
}

// NewEvalCommand returns a new instance of EvalCommand.
func NewEvalCommand(stdin io.Reader, stdout, stderr io.Writer) *EvalCommand {
	return &EvalCommand{
		CmdIO:  sqlcast.NewCmdIO(stdin, stdout, stderr),
		Format: FormatTable,
	}
}

// Run evaluates the statement.
func (cmd *EvalCommand) Run(ctx context.Context) error {
	sql := cmd.SQL
	if strings.TrimSpace(sql) == "" {
		b, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return errors.Wrap(err, "reading statement")
		}
		sql = string(b)
	}
	if strings.TrimSpace(sql) == "" {
		return errors.Errorf("no statement given")
	}

	api, err := sqlcast.NewAPI(sqlcast.OptAPILogger(cmd.Logger()))
	if err != nil {
		return errors.Wrap(err, "creating api")
	}

	switch cmd.Format {
	case FormatArrow:
		return api.QueryArrow(ctx, sql, cmd.Stdout)

	case FormatJSON:
		resp, err := api.Query(ctx, sql, cmd.IncludePlan)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "encoding response")
		}
		if resp.Error != "" {
			return errors.Errorf("evaluating: %s", resp.Error)
		}
		return nil

	case FormatTable, "":
		resp, err := api.Query(ctx, sql, false)
		if err != nil {
			return err
		}
		if resp.Error != "" {
			return errors.Errorf("evaluating: %s", resp.Error)
		}
		return cli.WriteResponse(resp, cmd.Stdout, cmd.Stderr)
	}
	return errors.Errorf("unknown format '%s'. use %s, %s or %s", cmd.Format, FormatTable, FormatJSON, FormatArrow)
}
