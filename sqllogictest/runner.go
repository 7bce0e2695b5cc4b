// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqllogictest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/featurebasedb/sqlcast/sql3/planner"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// FileExt is the extension of logic test files found in directories.
const FileExt = ".test"

// Queryer runs a single statement. *sqlcast.API implements it.
type Queryer interface {
	Query(ctx context.Context, sql string, includePlan bool) (*sqlcast.WireQueryResponse, error)
}

// Runner runs logic test files against a Queryer.
type Runner struct {
	queryer Queryer
	fs      afero.Fs
	out     io.Writer
	logger  logger.Logger

	parallelism int
	verbose     bool
}

type runnerOption func(r *Runner)

// OptRunnerFs sets the filesystem files are read from. The default is the
// OS filesystem.
func OptRunnerFs(fs afero.Fs) runnerOption {
	return func(r *Runner) {
		r.fs = fs
	}
}

// OptRunnerOutput sets where per-file results and failures are reported.
func OptRunnerOutput(w io.Writer) runnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

func OptRunnerLogger(l logger.Logger) runnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// OptRunnerParallelism sets how many files run at once.
func OptRunnerParallelism(n int) runnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// OptRunnerVerbose reports each passing record as well as failures.
func OptRunnerVerbose(v bool) runnerOption {
	return func(r *Runner) {
		r.verbose = v
	}
}

// NewRunner returns a Runner which sends statements to q.
func NewRunner(q Queryer, opts ...runnerOption) *Runner {
	r := &Runner{
		queryer:     q,
		fs:          afero.NewOsFs(),
		out:         io.Discard,
		logger:      logger.NopLogger,
		parallelism: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Failure describes a record whose outcome did not match its expectation.
type Failure struct {
	Line    int
	SQL     string
	Message string
}

// Result is the outcome of running one file.
type Result struct {
	File     string
	Passed   int
	Failures []Failure
}

// OK reports whether every record in the file passed.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Expand resolves paths into the list of files to run. Directories are
// searched recursively for FileExt files; other paths may be globs.
func (r *Runner) Expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		matches, err := afero.Glob(r.fs, p)
		if err != nil {
			return nil, errors.Wrapf(err, "globbing %s", p)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no such file: %s", p)
		}
		for _, m := range matches {
			fi, err := r.fs.Stat(m)
			if err != nil {
				return nil, errors.Wrapf(err, "stat %s", m)
			}
			if !fi.IsDir() {
				files = append(files, m)
				continue
			}
			err = afero.Walk(r.fs, m, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(path) == FileExt {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, errors.Wrapf(err, "walking %s", m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run runs every file named by paths and returns their results in file
// order. The error is for files which could not be read or parsed; record
// failures are reported in the results.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*Result, error) {
	files, err := r.Expand(paths)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			res, err := r.RunFile(ctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		r.report(res)
	}
	return results, nil
}

// RunFile parses and runs a single file.
func (r *Runner) RunFile(ctx context.Context, name string) (*Result, error) {
	fh, err := r.fs.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}
	defer fh.Close()

	f, err := Parse(name, fh)
	if err != nil {
		return nil, errors.Wrap(err, "parsing")
	}
	return r.RunRecords(ctx, f)
}

// RunRecords runs the records of a parsed file in order.
func (r *Runner) RunRecords(ctx context.Context, f *File) (*Result, error) {
	res := &Result{File: f.Name}
	for _, rec := range f.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if msg := r.runRecord(ctx, rec); msg != "" {
			res.Failures = append(res.Failures, Failure{Line: rec.Line, SQL: rec.SQL, Message: msg})
			continue
		}
		res.Passed++
		if r.verbose {
			r.logger.Debugf("%s:%d: ok", f.Name, rec.Line)
		}
	}
	return res, nil
}

// runRecord returns a description of how rec failed, or "" if it passed.
func (r *Runner) runRecord(ctx context.Context, rec *Record) string {
	resp, err := r.queryer.Query(ctx, rec.SQL, false)
	if err == nil && resp.Error != "" {
		err = errors.Errorf("%s", resp.Error)
	}

	if rec.ExpectErr {
		switch {
		case err == nil:
			return "expected an error, statement succeeded"
		case !strings.Contains(errors.Message(err), rec.ErrorMatch):
			return fmt.Sprintf("expected error containing %q, got %q", rec.ErrorMatch, errors.Message(err))
		}
		return ""
	}
	if err != nil {
		return fmt.Sprintf("unexpected error: %s", errors.Message(err))
	}
	if rec.Kind == RecordStatement {
		return ""
	}

	types := make([]byte, len(resp.Schema.Fields))
	for i, fld := range resp.Schema.Fields {
		types[i] = TypeLetter(fld.BaseType)
	}
	if string(types) != rec.Types {
		return fmt.Sprintf("expected column types %s, got %s", rec.Types, types)
	}

	got := make([]string, 0, len(resp.Data)*len(types))
	for _, row := range resp.Data {
		for _, v := range row {
			got = append(got, formatResult(planner.FormatValue(v)))
		}
	}
	exp := rec.Results
	if exp == nil {
		exp = []string{}
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		return fmt.Sprintf("results differ (-expected +got):\n%s", diff)
	}
	return ""
}

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

func (r *Runner) report(res *Result) {
	if res.OK() {
		passLabel.Fprint(r.out, "PASS")
		fmt.Fprintf(r.out, " %s (%d)\n", res.File, res.Passed)
		return
	}
	failLabel.Fprint(r.out, "FAIL")
	fmt.Fprintf(r.out, " %s (%d passed, %d failed)\n", res.File, res.Passed, len(res.Failures))
	for _, f := range res.Failures {
		fmt.Fprintf(r.out, "  %s:%d: %s\n", res.File, f.Line, f.SQL)
		for _, line := range strings.Split(f.Message, "\n") {
			fmt.Fprintf(r.out, "    %s\n", line)
		}
	}
}

// Summarize writes totals for results to w and reports whether all passed.
func Summarize(w io.Writer, results []*Result) bool {
	var passed, failed, files int
	for _, res := range results {
		passed += res.Passed
		failed += len(res.Failures)
		if !res.OK() {
			files++
		}
	}
	if failed == 0 {
		passLabel.Fprint(w, "ok")
		fmt.Fprintf(w, " %d files, %d records\n", len(results), passed)
		return true
	}
	failLabel.Fprint(w, "FAILED")
	fmt.Fprintf(w, " %d of %d files, %d of %d records\n", files, len(results), failed, passed+failed)
	return false
}
