// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"fmt"
	"io"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
)

// writeOptions contains user configuration options which describe how to write
// the query output.
type writeOptions struct {
	timing bool
}

func defaultWriteOptions() *writeOptions {
	return &writeOptions{
		timing: false,
	}
}

// writeTable writes the query response, taking the format into consideration.
// It sends query output to qOut, non-error informational output (such as query
// timing) to wOut, and errors and warnings to wErr.
func writeTable(r *sqlcast.WireQueryResponse, format *writeOptions, qOut io.Writer, wOut io.Writer, wErr io.Writer) error {
	if r == nil {
		return errors.Errorf("attempt to write out nil response")
	}
	if r.Error != "" {
		if _, err := wErr.Write([]byte("Error: " + r.Error + "\n")); err != nil {
			return errors.Wrapf(err, "writing error: %s", r.Error)
		}
		return writeWarnings(r, wErr)
	}

	t := table.NewWriter()
	t.SetOutputMirror(qOut)

	// Don't uppercase the header values.
	t.Style().Format.Header = text.FormatDefault

	t.AppendHeader(schemaToRow(r.Schema))
	for _, row := range r.Data {
		// go-pretty doesn't expect nil values, so NULL is written out.
		out := make(table.Row, len(row))
		for i := range row {
			if row[i] == nil {
				out[i] = nullValue
			} else {
				out[i] = row[i]
			}
		}
		t.AppendRow(out)
	}
	t.Render()

	if err := writeWarnings(r, wErr); err != nil {
		return err
	}

	// Timing.
	if format.timing {
		if _, err := wOut.Write([]byte(fmt.Sprintf("Execution time: %dμs\n", r.ExecutionTime))); err != nil {
			return errors.Wrapf(err, "writing execution time")
		}
	}

	return nil
}

// WriteResponse writes r to w as a table. Errors and warnings go to wErr.
func WriteResponse(r *sqlcast.WireQueryResponse, w, wErr io.Writer) error {
	return writeTable(r, defaultWriteOptions(), w, w, wErr)
}

func schemaToRow(schema sqlcast.WireQuerySchema) table.Row {
	ret := make(table.Row, len(schema.Fields))
	for i, field := range schema.Fields {
		ret[i] = field.Name
	}
	return ret
}

func writeWarnings(r *sqlcast.WireQueryResponse, w io.Writer) error {
	if len(r.Warnings) == 0 {
		return nil
	}

	if _, err := w.Write([]byte("\n")); err != nil {
		return errors.Wrapf(err, "writing line feed")
	}
	for _, warning := range r.Warnings {
		if _, err := w.Write([]byte("Warning: " + warning + "\n")); err != nil {
			return errors.Wrapf(err, "writing warning: %s", warning)
		}
	}
	return nil
}
