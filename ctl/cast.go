// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// CastCommand converts string values to a type and prints one result per
// line.
type CastCommand struct {
	*sqlcast.CmdIO

	// Type is the target type, e.g. "decimal(10,2)". Requests read from
	// File use it when they name no type of their own.
	Type string

	Values []string

	// Null appends a NULL value to Values.
	Null bool

	// Try makes failed conversions NULL instead of errors.
	Try bool

	// File is a YAML or JSON list of cast requests.
	File string

	// Format is text or json.
	Format string

	// Parallelism bounds the number of casts evaluated at once.
	Parallelism int

	fs afero.Fs
}

// NewCastCommand returns a new instance of CastCommand.
func NewCastCommand(stdin io.Reader, stdout, stderr io.Writer) *CastCommand {
	return &CastCommand{
		CmdIO:       sqlcast.NewCmdIO(stdin, stdout, stderr),
		Format:      "text",
		Parallelism: 4,
		fs:          afero.NewOsFs(),
	}
}

// Run casts every value and returns an error if any of them failed.
func (cmd *CastCommand) Run(ctx context.Context) error {
	reqs, err := cmd.requests()
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return errors.Errorf("no values to cast")
	}

	api, err := sqlcast.NewAPI(
		sqlcast.OptAPILogger(cmd.Logger()),
		sqlcast.OptAPICastParallelism(cmd.Parallelism),
	)
	if err != nil {
		return errors.Wrap(err, "creating api")
	}

	resps, err := api.CastBatch(ctx, reqs)
	if err != nil {
		return errors.Wrap(err, "casting")
	}

	var failed int
	for _, resp := range resps {
		if resp.Error != "" {
			failed++
		}
	}

	switch cmd.Format {
	case "json":
		enc := json.NewEncoder(cmd.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resps); err != nil {
			return errors.Wrap(err, "encoding results")
		}
	case "text", "":
		for _, resp := range resps {
			switch {
			case resp.Error != "":
				fmt.Fprintf(cmd.Stderr, "Error: %s\n", resp.Error)
			case resp.Result == nil:
				fmt.Fprintln(cmd.Stdout, "NULL")
			default:
				fmt.Fprintln(cmd.Stdout, *resp.Result)
			}
		}
	default:
		return errors.Errorf("unknown format '%s'. use text or json", cmd.Format)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d casts failed", failed, len(resps))
	}
	return nil
}

// requests builds the batch from File followed by Values.
func (cmd *CastCommand) requests() ([]sqlcast.CastRequest, error) {
	var reqs []sqlcast.CastRequest
	if cmd.File != "" {
		b, err := afero.ReadFile(cmd.fs, cmd.File)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", cmd.File)
		}
		if err := yaml.Unmarshal(b, &reqs); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", cmd.File)
		}
		for i := range reqs {
			if reqs[i].Type == "" {
				reqs[i].Type = cmd.Type
			}
			if cmd.Try {
				reqs[i].Try = true
			}
		}
	}

	for i := range cmd.Values {
		v := cmd.Values[i]
		reqs = append(reqs, sqlcast.CastRequest{Value: &v, Type: cmd.Type, Try: cmd.Try})
	}
	if cmd.Null {
		reqs = append(reqs, sqlcast.CastRequest{Type: cmd.Type, Try: cmd.Try})
	}

	for i := range reqs {
		if reqs[i].Type == "" {
			return nil, errors.Errorf("cast %d has no type", i+1)
		}
	}
	return reqs, nil
}
