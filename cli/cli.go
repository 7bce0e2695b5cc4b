// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package cli is an interactive SQL shell for evaluating literals and casts,
// either in process or against a sqlcast server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
)

const (
	defaultHost     string = "http://localhost"
	defaultPort     string = "10180"
	promptBegin     string = "sqlcast> "
	promptMid       string = "      -> "
	terminationChar string = ";"
	nullValue       string = "NULL"
)

// Command is the sqlcast shell.
type Command struct {
	Config *Config

	// Queryer runs statements. It is set up from Config when nil.
	Queryer Queryer

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	// output is where query results are written; \o changes it.
	output     io.Writer
	outputFile *os.File

	splitter     *splitter
	replacer     *replacer
	buffer       *buffer
	variables    map[string]string
	writeOptions *writeOptions

	logger logger.Logger
}

// NewCommand returns a new instance of Command.
func NewCommand(logdest logger.Logger) *Command {
	variables := make(map[string]string)
	replacer := newReplacer(variables)
	return &Command{
		Config: NewConfig(),

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		output: os.Stdout,

		splitter:     newSplitter(replacer),
		replacer:     replacer,
		buffer:       newBuffer(),
		variables:    variables,
		writeOptions: defaultWriteOptions(),

		logger: logdest,
	}
}

// SetStdout sets Stdout and the query output together.
func (cmd *Command) SetStdout(w io.Writer) {
	cmd.Stdout = w
	cmd.output = w
}

func (cmd *Command) setupClient() error {
	// If the Queryer has already been set (in tests for example), don't
	// bother creating one.
	if cmd.Queryer != nil {
		return nil
	}

	if cmd.Config.Local {
		api, err := sqlcast.NewAPI(sqlcast.OptAPILogger(cmd.logger))
		if err != nil {
			return errors.Wrap(err, "creating api")
		}
		cmd.Queryer = NewLocalQueryer(api)
		return nil
	}

	host := strings.TrimSpace(cmd.Config.Host)
	if host == "" {
		return errors.Errorf("no host provided")
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host
	}
	cmd.Queryer = NewHTTPQueryer(host, cmd.Config.Port, cmd.Config.Timeout, cmd.logger)
	return nil
}

func (cmd *Command) setupHistory() string {
	if cmd.Config.HistoryPath != "" {
		return cmd.Config.HistoryPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		cmd.Errorf("Error getting home directory, command history persistence will be disabled: %v\n", err)
		return ""
	}
	historyDir := filepath.Join(home, ".sqlcast")
	if err := os.MkdirAll(historyDir, 0o750); err != nil {
		cmd.Errorf("Creating directory for history: %v\n", err)
		return ""
	}
	return filepath.Join(historyDir, "cli_history")
}

// Run starts the shell. When Config.File is set, the file is executed and
// Run returns; otherwise statements are read from the prompt until \q or
// EOF.
func (cmd *Command) Run(ctx context.Context) error {
	defer cmd.closeOutput()

	if err := cmd.setupClient(); err != nil {
		return errors.Wrap(err, "setting up client")
	}

	if cmd.Config.File != "" {
		f, err := os.Open(cmd.Config.File)
		if err != nil {
			return errors.Wrapf(err, "opening file: %s", cmd.Config.File)
		}
		defer f.Close()
		return cmd.Execute(ctx, f)
	}

	cmd.Printf("sqlcast CLI (%s)\nType \"\\q\" to quit, \"\\?\" for help.\n", sqlcast.Version)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 promptBegin,
		HistoryFile:            cmd.setupHistory(),
		HistoryLimit:           100000,
		DisableAutoSaveHistory: true,

		Stdin:  cmd.Stdin,
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	})
	if err != nil {
		return errors.Wrap(err, "getting readline")
	}
	defer rl.Close()

	for {
		if cmd.buffer.isEmpty() {
			rl.SetPrompt(promptBegin)
		} else {
			rl.SetPrompt(promptMid)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			cmd.buffer.reset()
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrap(err, "reading line")
		}

		if strings.TrimSpace(line) != "" {
			if err := rl.SaveHistory(line); err != nil {
				cmd.Errorf("Couldn't save history: %v\n", err)
			}
		}

		quit, err := cmd.handleLine(ctx, line)
		if err != nil {
			cmd.Errorf("Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute reads statements and meta-commands from r until EOF or \q. It
// returns the first error encountered.
func (cmd *Command) Execute(ctx context.Context, r io.Reader) error {
	if err := cmd.setupClient(); err != nil {
		return errors.Wrap(err, "setting up client")
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		quit, err := cmd.handleLine(ctx, sc.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "scanning input")
	}
	if !cmd.buffer.isEmpty() {
		// A final statement without a terminator is still run.
		if qry, _ := cmd.buffer.addPart(newPartTerminator()); qry != nil {
			return cmd.executeAndWriteQuery(ctx, qry)
		}
	}
	return nil
}

// handleLine splits line, buffering query parts and running any completed
// queries, then runs its meta-commands. It reports whether the shell should
// quit.
func (cmd *Command) handleLine(ctx context.Context, line string) (bool, error) {
	qps, mcs, err := cmd.splitter.split(line)
	if err != nil {
		return false, errors.Wrap(err, "splitting line")
	}

	for i := range qps {
		qry, err := cmd.buffer.addPart(qps[i])
		if err != nil {
			return false, errors.Wrap(err, "adding part to buffer")
		} else if qry != nil {
			if err := cmd.executeAndWriteQuery(ctx, qry); err != nil {
				return false, errors.Wrap(err, "executing query")
			}
		}
	}

	for _, mc := range mcs {
		act, err := mc.execute(ctx, cmd)
		if err != nil {
			return false, errors.Wrap(err, "executing meta command")
		}
		if act == actionQuit {
			return true, nil
		}
	}
	return false, nil
}

func (cmd *Command) executeAndWriteQuery(ctx context.Context, qry query) error {
	resp, err := cmd.Queryer.Query(ctx, qry.Reader())
	if err != nil {
		return err
	}
	return writeTable(resp, cmd.writeOptions, cmd.output, cmd.Stdout, cmd.Stderr)
}

// closeOutput closes the \o destination when it is a file.
func (cmd *Command) closeOutput() error {
	if cmd.outputFile == nil {
		return nil
	}
	f := cmd.outputFile
	cmd.outputFile = nil
	cmd.output = cmd.Stdout
	return f.Close()
}

// Printf is a helper method which sends the given payload to stdout.
func (cmd *Command) Printf(format string, a ...interface{}) {
	fmt.Fprintf(cmd.Stdout, format, a...)
}

// Errorf is a helper method which sends the given payload to stderr.
func (cmd *Command) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(cmd.Stderr, format, a...)
}
