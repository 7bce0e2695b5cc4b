// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/featurebasedb/sqlcast/errors"
)

// action tells Command how to respond after a meta-command has run.
type action string

const (
	actionNone  action = ""
	actionQuit  action = "quit"
	actionReset action = "reset"
)

// metaCommand is a parsed "\" meta-command. name is always the long form.
type metaCommand struct {
	name string
	args []string
}

type metaFunc func(ctx context.Context, cmd *Command, args []string) (action, error)

// metaNames maps every accepted spelling to the long form.
var metaNames = map[string]string{
	"echo":    "echo",
	"?":       "help",
	"i":       "include",
	"include": "include",
	"o":       "output",
	"output":  "output",
	"p":       "print",
	"print":   "print",
	"qecho":   "qecho",
	"q":       "quit",
	"quit":    "quit",
	"r":       "reset",
	"reset":   "reset",
	"set":     "set",
	"unset":   "unset",
	"timing":  "timing",
	"warn":    "warn",
}

var metaFuncs = map[string]metaFunc{
	"echo":    metaEcho,
	"help":    metaHelp,
	"include": metaInclude,
	"output":  metaOutput,
	"print":   metaPrint,
	"qecho":   metaQEcho,
	"quit":    metaQuit,
	"reset":   metaReset,
	"set":     metaSet,
	"unset":   metaUnset,
	"timing":  metaTiming,
	"warn":    metaWarn,
}

func (m metaCommand) execute(ctx context.Context, cmd *Command) (action, error) {
	fn, ok := metaFuncs[m.name]
	if !ok {
		return actionNone, errors.Errorf("unsupported meta-command: '%s'", m.name)
	}
	return fn(ctx, cmd, m.args)
}

const helpText = `General
  \q[uit]                quit sqlcast

Help
  \? [commands]          show help on backslash commands

Query Buffer
  \p[rint]               show the contents of the query buffer
  \r[eset]               reset (clear) the query buffer

Input/Output
  \echo [-n] [STRING]    write string to standard output (-n for no newline)
  \i[nclude] FILE        execute commands from file
  \o [FILE]              send all query results to file
  \qecho [-n] [STRING]   write string to \o output stream (-n for no newline)
  \warn [-n] [STRING]    write string to standard error (-n for no newline)

Variables
  \set [NAME [VALUE]]    set internal variable, or list all if no parameters
  \unset NAME            unset (delete) internal variable

Formatting
  \timing [on|off]       toggle timing of commands
`

func metaHelp(_ context.Context, cmd *Command, _ []string) (action, error) {
	cmd.Printf("%s\n", helpText)
	return actionNone, nil
}

func metaEcho(_ context.Context, cmd *Command, args []string) (action, error) {
	return echo(args, cmd.Stdout)
}

func metaQEcho(_ context.Context, cmd *Command, args []string) (action, error) {
	return echo(args, cmd.output)
}

func metaWarn(_ context.Context, cmd *Command, args []string) (action, error) {
	return echo(args, cmd.Stderr)
}

// echo writes args to w separated by spaces. A leading -n drops the
// trailing newline.
func echo(args []string, w io.Writer) (action, error) {
	newline := "\n"
	if len(args) > 0 && args[0] == "-n" {
		args, newline = args[1:], ""
	}
	_, err := io.WriteString(w, strings.Join(args, " ")+newline)
	return actionNone, errors.Wrap(err, "echo")
}

// metaInclude runs the statements in a file. The file gets its own buffer,
// so a partial statement at the prompt is left untouched.
func metaInclude(ctx context.Context, cmd *Command, args []string) (action, error) {
	if len(args) != 1 {
		return actionNone, errors.Errorf("meta command 'include' requires exactly one argument")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return actionNone, errors.Wrapf(err, "opening file: %s", args[0])
	}
	defer file.Close()

	splitter := newSplitter(cmd.replacer)
	buf := newBuffer()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		qps, mcs, err := splitter.split(sc.Text())
		if err != nil {
			return actionNone, errors.Wrapf(err, "splitting lines")
		} else if len(mcs) > 0 {
			return actionNone, errors.Errorf("include does not support meta-commands")
		}

		for _, qp := range qps {
			qry, err := buf.addPart(qp)
			if err != nil {
				return actionNone, errors.Wrap(err, "adding part to buffer")
			}
			if qry == nil {
				continue
			}
			if err := cmd.executeAndWriteQuery(ctx, qry); err != nil {
				return actionNone, errors.Wrap(err, "executing query")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return actionNone, errors.Wrapf(err, "scanning file: %s", args[0])
	}
	return actionNone, nil
}

// metaOutput sends query results to a file, appending, or back to stdout
// when no file is given.
func metaOutput(_ context.Context, cmd *Command, args []string) (action, error) {
	if len(args) > 1 {
		return actionNone, errors.Errorf("meta command 'output' takes zero or one argument")
	}
	if len(args) == 0 {
		return actionNone, errors.Wrapf(cmd.closeOutput(), "closing output")
	}

	fpath, err := filepath.Abs(args[0])
	if err != nil {
		return actionNone, errors.Wrapf(err, "getting absolute file path for file: %s", args[0])
	}
	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return actionNone, errors.Wrapf(err, "opening file: %s", fpath)
	}
	if err := cmd.closeOutput(); err != nil {
		f.Close()
		return actionNone, errors.Wrapf(err, "closing output")
	}
	cmd.output, cmd.outputFile = f, f
	return actionNone, nil
}

func metaPrint(_ context.Context, cmd *Command, _ []string) (action, error) {
	cmd.Printf("%s\n", cmd.buffer.print())
	return actionNone, nil
}

func metaQuit(context.Context, *Command, []string) (action, error) {
	return actionQuit, nil
}

func metaReset(_ context.Context, cmd *Command, _ []string) (action, error) {
	cmd.Printf("%s", cmd.buffer.reset())
	return actionReset, nil
}

// metaSet lists variables when given no arguments. Otherwise the first
// argument names the variable and the rest are concatenated into its value.
func metaSet(_ context.Context, cmd *Command, args []string) (action, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(cmd.variables))
		for name := range cmd.variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("%s = '%s'\n", name, cmd.variables[name])
		}
		return actionNone, nil
	}

	name := args[0]
	for i := 0; i < len(name); i++ {
		if !isVariableChar(name[i]) {
			return actionNone, errors.Errorf("invalid variable name: \"%s\"", name)
		}
	}
	cmd.variables[name] = strings.Join(args[1:], "")
	return actionNone, nil
}

func metaUnset(_ context.Context, cmd *Command, args []string) (action, error) {
	if len(args) != 1 {
		return actionNone, errors.Errorf("meta command 'unset' requires exactly one argument")
	}
	delete(cmd.variables, args[0])
	return actionNone, nil
}

func metaTiming(_ context.Context, cmd *Command, args []string) (action, error) {
	opts := cmd.writeOptions
	switch {
	case len(args) == 0:
		opts.timing = !opts.timing
	case len(args) > 1:
		return actionNone, errors.Errorf("meta command 'timing' takes zero or one argument")
	case args[0] == "on":
		opts.timing = true
	case args[0] == "off":
		opts.timing = false
	default:
		return actionNone, errors.Errorf("unrecognized value \"%s\" for \"\\timing\": Boolean expected", args[0])
	}

	state := "off"
	if opts.timing {
		state = "on"
	}
	cmd.Printf("Timing is %s.\n", state)
	return actionNone, nil
}

// splitMetaCommand parses the text following a backslash, e.g.
//
//	`cmd`
//	`cmd arg1 arg2`
//	`cmd 'arg1' arg2 'arg three'`
//
// Variable references in the arguments are replaced.
func splitMetaCommand(in string, r *replacer) (metaCommand, error) {
	key, rest, _ := strings.Cut(in, " ")
	key = strings.TrimRightFunc(key, unicode.IsSpace)

	name, ok := metaNames[key]
	if !ok {
		return metaCommand{}, errors.Errorf("unsupported meta-command: '%s'", key)
	}
	return metaCommand{name: name, args: splitMetaArgs(r.replace(rest))}, nil
}

// splitMetaArgs splits s on spaces outside single quotes. The quotes are
// dropped. It returns nil when there are no arguments.
func splitMetaArgs(s string) []string {
	var args []string
	var sb strings.Builder
	quoted := false
	for _, c := range s {
		switch {
		case c == '\'':
			quoted = !quoted
		case c == ' ' && !quoted:
			if sb.Len() > 0 {
				args = append(args, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteRune(c)
		}
	}
	if sb.Len() > 0 {
		args = append(args, sb.String())
	}
	return args
}
