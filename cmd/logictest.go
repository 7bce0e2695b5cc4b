// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/sqlcast/ctl"
	"github.com/spf13/cobra"
)

var LogicTest *ctl.LogicTestCommand

var generateLogicTest *ctl.GenerateLogicTestCommand

func newLogicTestCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	LogicTest = ctl.NewLogicTestCommand(stdin, stdout, stderr)
	ltCmd := &cobra.Command{
		Use:   "logictest <path>...",
		Short: "Run logic test files.",
		Long: `logictest runs each .test file named, or found under a named
directory, against an in-process evaluator and reports the results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			LogicTest.Paths = args
			return LogicTest.Run(context.Background())
		},
	}

	flags := ltCmd.Flags()
	flags.IntVar(&LogicTest.Parallelism, "parallelism", LogicTest.Parallelism, "Number of files run at once.")
	flags.BoolVarP(&LogicTest.Verbose, "verbose", "v", LogicTest.Verbose, "Report passing records as well as failures.")

	ltCmd.AddCommand(newGenerateLogicTestCommand(stdin, stdout, stderr))
	return ltCmd
}

func newGenerateLogicTestCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	generateLogicTest = ctl.NewGenerateLogicTestCommand(stdin, stdout, stderr)
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the built-in test groups as logic test files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateLogicTest.Run(context.Background())
		},
	}
	genCmd.Flags().StringVarP(&generateLogicTest.Dir, "dir", "d", generateLogicTest.Dir, "Directory to write files to.")
	return genCmd
}
