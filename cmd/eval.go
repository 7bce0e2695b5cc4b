// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/featurebasedb/sqlcast/ctl"
	"github.com/spf13/cobra"
)

var Eval *ctl.EvalCommand

func newEvalCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	Eval = ctl.NewEvalCommand(stdin, stdout, stderr)
	evalCmd := &cobra.Command{
		Use:   "eval [statement]",
		Short: "Evaluate a single SQL statement.",
		Long: `eval evaluates a single SELECT statement in process and prints the
result. The statement is read from stdin when no argument is given.

The arrow format writes an Arrow IPC stream holding one record batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Eval.SQL = strings.Join(args, " ")
			return Eval.Run(context.Background())
		},
	}

	flags := evalCmd.Flags()
	flags.StringVar(&Eval.Format, "format", Eval.Format, "Output format: table, json or arrow.")
	flags.BoolVar(&Eval.IncludePlan, "plan", Eval.IncludePlan, "Include the query plan in json output.")

	return evalCmd
}
