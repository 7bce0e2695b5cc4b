// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/test/defs"
	"github.com/featurebasedb/sqlcast/sqllogictest"
	"github.com/spf13/afero"
)

// LogicTestCommand runs logic test files against an in-process API.
type LogicTestCommand struct {
	*sqlcast.CmdIO

	// Paths are files, directories or glob patterns.
	Paths []string

	Parallelism int
	Verbose     bool

	fs afero.Fs
}

// NewLogicTestCommand returns a new instance of LogicTestCommand.
func NewLogicTestCommand(stdin io.Reader, stdout, stderr io.Writer) *LogicTestCommand {
	return &LogicTestCommand{
		CmdIO:       sqlcast.NewCmdIO(stdin, stdout, stderr),
		Parallelism: 4,
		fs:          afero.NewOsFs(),
	}
}

// Run runs the files and prints a summary. It returns an error if any
// record failed.
func (cmd *LogicTestCommand) Run(ctx context.Context) error {
	if len(cmd.Paths) == 0 {
		return errors.Errorf("no test files given")
	}
	api, err := sqlcast.NewAPI(sqlcast.OptAPILogger(cmd.Logger()))
	if err != nil {
		return errors.Wrap(err, "creating api")
	}

	runner := sqllogictest.NewRunner(api,
		sqllogictest.OptRunnerFs(cmd.fs),
		sqllogictest.OptRunnerOutput(cmd.Stdout),
		sqllogictest.OptRunnerLogger(cmd.Logger()),
		sqllogictest.OptRunnerParallelism(cmd.Parallelism),
		sqllogictest.OptRunnerVerbose(cmd.Verbose),
	)
	results, err := runner.Run(ctx, cmd.Paths)
	if err != nil {
		return err
	}
	if !sqllogictest.Summarize(cmd.Stdout, results) {
		return errors.Errorf("logic tests failed")
	}
	return nil
}

// GenerateLogicTestCommand writes the built-in literal and cast test
// groups out as logic test files.
type GenerateLogicTestCommand struct {
	*sqlcast.CmdIO

	Dir string

	fs afero.Fs
}

// NewGenerateLogicTestCommand returns a new instance of
// GenerateLogicTestCommand.
func NewGenerateLogicTestCommand(stdin io.Reader, stdout, stderr io.Writer) *GenerateLogicTestCommand {
	return &GenerateLogicTestCommand{
		CmdIO: sqlcast.NewCmdIO(stdin, stdout, stderr),
		Dir:   ".",
		fs:    afero.NewOsFs(),
	}
}

// Run writes one file per group and prints the paths written.
func (cmd *GenerateLogicTestCommand) Run(_ context.Context) error {
	paths, err := sqllogictest.GenerateAll(cmd.fs, cmd.Dir, defs.TestGroups)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.Stdout, path)
	}
	return nil
}
