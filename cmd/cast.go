// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/sqlcast/ctl"
	"github.com/spf13/cobra"
)

var Cast *ctl.CastCommand

func newCastCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	Cast = ctl.NewCastCommand(stdin, stdout, stderr)
	castCmd := &cobra.Command{
		Use:   "cast <type> [value...]",
		Short: "Cast string values to a SQL type.",
		Long: `cast converts each value to the given type, e.g.

    sqlcast cast 'decimal(10,2)' 1.5 -2.239

Requests may also be read from a YAML or JSON file with --file, as a list
of {value, type, try} objects. Requests without a type use <type>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Cast.Type = args[0]
			Cast.Values = args[1:]
			return Cast.Run(context.Background())
		},
	}

	flags := castCmd.Flags()
	flags.BoolVar(&Cast.Try, "try", Cast.Try, "Return NULL for values which cannot be converted.")
	flags.BoolVar(&Cast.Null, "null", Cast.Null, "Also cast a NULL value.")
	flags.StringVarP(&Cast.File, "file", "f", Cast.File, "YAML or JSON file of cast requests.")
	flags.StringVar(&Cast.Format, "format", Cast.Format, "Output format: text or json.")
	flags.IntVar(&Cast.Parallelism, "parallelism", Cast.Parallelism, "Number of casts evaluated at once.")

	return castCmd
}
