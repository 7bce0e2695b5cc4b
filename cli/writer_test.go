// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"bytes"
	"testing"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	wqr := &sqlcast.WireQueryResponse{
		Schema: sqlcast.WireQuerySchema{
			Fields: []*sqlcast.WireQueryField{
				{Name: "day", Type: "date", BaseType: "date"},
				{Name: "price", Type: "decimal(5,2)", BaseType: "decimal"},
				{Name: "missing", Type: "int", BaseType: "int"},
			},
		},
		Data: [][]interface{}{
			{"2020-02-29", decimal.New(150, 5, 2), nil},
		},
		Warnings:      []string{"careful"},
		ExecutionTime: 42,
	}

	t.Run("Table", func(t *testing.T) {
		var qOut, wOut, wErr bytes.Buffer
		require.NoError(t, writeTable(wqr, defaultWriteOptions(), &qOut, &wOut, &wErr))

		assert.Contains(t, qOut.String(), "day")
		assert.Contains(t, qOut.String(), "price")
		assert.Contains(t, qOut.String(), "2020-02-29")
		assert.Contains(t, qOut.String(), "1.50")
		assert.Contains(t, qOut.String(), nullValue)
		assert.Equal(t, "", wOut.String())
		assert.Equal(t, "\nWarning: careful\n", wErr.String())

		// The response itself is not modified.
		assert.Nil(t, wqr.Data[0][2])
	})

	t.Run("Timing", func(t *testing.T) {
		var qOut, wOut, wErr bytes.Buffer
		require.NoError(t, writeTable(wqr, &writeOptions{timing: true}, &qOut, &wOut, &wErr))
		assert.Equal(t, "Execution time: 42μs\n", wOut.String())
	})

	t.Run("Error", func(t *testing.T) {
		var qOut, wOut, wErr bytes.Buffer
		resp := &sqlcast.WireQueryResponse{Error: "[1:8] unknown type 'money'"}
		require.NoError(t, writeTable(resp, defaultWriteOptions(), &qOut, &wOut, &wErr))
		assert.Equal(t, "", qOut.String())
		assert.Equal(t, "Error: [1:8] unknown type 'money'\n", wErr.String())
	})

	t.Run("Nil", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, writeTable(nil, defaultWriteOptions(), &buf, &buf, &buf))
	})
}
