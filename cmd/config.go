// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/sqlcast/ctl"
	"github.com/spf13/cobra"
)

var Conf *ctl.ConfigCommand

func newConfigCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	Conf = ctl.NewConfigCommand(stdin, stdout, stderr)
	confCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the current configuration.",
		Long: `config prints the server configuration after flags, environment
variables and the config file have been applied.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Conf.Run(context.Background())
		},
	}

	// The config command accepts the same flags as server.
	ctl.BuildServerFlags(confCmd, Conf.Config)

	return confCmd
}
