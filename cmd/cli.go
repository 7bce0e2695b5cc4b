// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/sqlcast/cli"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/spf13/cobra"
)

var cliCmd *cli.Command

// newCLICommand runs the interactive SQL shell.
func newCLICommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cliCmd = cli.NewCommand(logger.NewStandardLogger(stderr))
	if rc, ok := stdin.(io.ReadCloser); ok {
		cliCmd.Stdin = rc
	} else {
		cliCmd.Stdin = io.NopCloser(stdin)
	}
	cliCmd.SetStdout(stdout)
	cliCmd.Stderr = stderr

	cobraCmd := &cobra.Command{
		Use:   "cli",
		Short: "Evaluate SQL literals and casts from the command line",
		Long: `cli starts an interactive shell which sends each statement to a
sqlcast server, or evaluates it in process with --local.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliCmd.Run(context.Background())
		},
	}

	conf := cliCmd.Config
	flags := cobraCmd.Flags()
	flags.StringVar(&conf.Host, "host", conf.Host, "hostname of the sqlcast server.")
	flags.StringVar(&conf.Port, "port", conf.Port, "port of the sqlcast server.")
	flags.BoolVar(&conf.Local, "local", conf.Local, "evaluate statements in process instead of on a server.")
	flags.StringVarP(&conf.File, "file", "f", conf.File, "execute the statements in file and exit.")
	flags.DurationVar(&conf.Timeout, "timeout", conf.Timeout, "time allowed for each request to the server.")
	flags.StringVar(&conf.HistoryPath, "history-path", conf.HistoryPath, "path for history files.")

	return cobraCmd
}
