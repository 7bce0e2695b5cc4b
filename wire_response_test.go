// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireQueryResponse_RoundTrip(t *testing.T) {
	api := newAPI(t)
	resp, err := api.Query(context.Background(),
		`select 9223372036854775807 i, '12.30'::decimal(6,2) d, date '1992-01-01' dt, timestamp '2020-01-01 10:00:00.5' ts, '90s'::duration dur, 'x' s, null n, true b`,
		false)
	require.NoError(t, err)
	require.Empty(t, resp.Error)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	t.Run("Untyped", func(t *testing.T) {
		var got sqlcast.WireQueryResponse
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got.Data, 1)
		row := got.Data[0]

		assert.Equal(t, int64(9223372036854775807), row[0])
		require.IsType(t, decimal.Decimal{}, row[1])
		d := row[1].(decimal.Decimal)
		assert.Equal(t, "12.30", d.String())
		assert.Equal(t, int64(6), d.Width)
		assert.Equal(t, int64(2), d.Scale)
		assert.Equal(t, "1992-01-01", row[2])
		assert.Equal(t, "2020-01-01 10:00:00.5", row[3])
		assert.Equal(t, "x", row[5])
		assert.Nil(t, row[6])
		assert.Equal(t, true, row[7])

		assert.Equal(t, int64(6), got.Schema.Fields[1].TypeInfo["width"])
		assert.Equal(t, "decimal(6,2)", got.Schema.Fields[1].Type)
	})

	t.Run("Typed", func(t *testing.T) {
		var got sqlcast.WireQueryResponse
		require.NoError(t, got.UnmarshalJSONTyped(data, true))
		row := got.Data[0]

		assert.Equal(t, temporal.MustParseDate("1992-01-01"), row[2])
		assert.Equal(t, temporal.MustParseTimestamp("2020-01-01 10:00:00.5"), row[3])
		assert.IsType(t, temporal.Duration{}, row[4])
	})
}

func TestWireQueryResponse_FloatAndTime(t *testing.T) {
	resp, err := newAPI(t).Query(context.Background(), `select '0.125'::double f, time '23:59:59.75' tm`, false)
	require.NoError(t, err)
	require.Empty(t, resp.Error)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var untyped sqlcast.WireQueryResponse
	require.NoError(t, json.Unmarshal(data, &untyped))
	assert.Equal(t, []interface{}{0.125, "23:59:59.75"}, untyped.Data[0])

	var typed sqlcast.WireQueryResponse
	require.NoError(t, typed.UnmarshalJSONTyped(data, true))
	assert.Equal(t, []interface{}{0.125, temporal.MustParseTime("23:59:59.75")}, typed.Data[0])
}

func TestWireQueryResponse_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  string
	}{
		{
			name: "RowLength",
			in:   `{"schema":{"fields":[{"name":"a","type":"int","base-type":"int"}]},"data":[[1,2]]}`,
			err:  "row 0 has 2 values, expected 1",
		},
		{
			name: "BadInt",
			in:   `{"schema":{"fields":[{"name":"a","type":"int","base-type":"int"}]},"data":[["one"]]}`,
			err:  "unexpected int value one",
		},
		{
			name: "DecimalWithoutScale",
			in:   `{"schema":{"fields":[{"name":"a","type":"decimal","base-type":"decimal"}]},"data":[[1.5]]}`,
			err:  "decimal does not have a width and scale",
		},
		{
			name: "DecimalOutOfRange",
			in:   `{"schema":{"fields":[{"name":"a","type":"decimal(3,3)","base-type":"decimal","type-info":{"width":3,"scale":3}}]},"data":[[1.5]]}`,
			err:  "out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sqlcast.WireQueryResponse
			err := json.Unmarshal([]byte(tt.in), &got)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestWireQueryResponse_ErrorSkipsData(t *testing.T) {
	in := `{"schema":{"fields":[]},"data":[["ignored"]],"error":"boom"}`
	var got sqlcast.WireQueryResponse
	require.NoError(t, json.Unmarshal([]byte(in), &got))
	assert.Equal(t, "boom", got.Error)
}
