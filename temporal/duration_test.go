// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in  string
		exp temporal.Duration
	}{
		{"123s", temporal.Duration{Value: 123, Unit: temporal.Second}},
		{"1ms", temporal.Duration{Value: 1, Unit: temporal.Millisecond}},
		{"1000us", temporal.Duration{Value: 1000, Unit: temporal.Microsecond}},
		{"1200000ns", temporal.Duration{Value: 1200000, Unit: temporal.Nanosecond}},
		{"-1ns", temporal.Duration{Value: -1, Unit: temporal.Nanosecond}},
		{" +5 MS ", temporal.Duration{Value: 5, Unit: temporal.Millisecond}},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d, err := temporal.ParseDuration(test.in)
			require.NoError(t, err)
			assert.Equal(t, test.exp, d)
		})
	}

	for _, in := range []string{"", "s", "10", "10m", "1.5s", "--1s"} {
		_, err := temporal.ParseDuration(in)
		assert.True(t, errors.Is(err, temporal.ErrInvalidDuration), "%q: %v", in, err)
	}
	_, err := temporal.ParseDuration("99999999999999999999s")
	assert.True(t, errors.Is(err, temporal.ErrOutOfRange))
}

func TestDurationConvert(t *testing.T) {
	tests := []struct {
		in  temporal.Duration
		to  temporal.Unit
		exp int64
	}{
		{temporal.Duration{Value: 1, Unit: temporal.Second}, temporal.Millisecond, 1000},
		{temporal.Duration{Value: 1500, Unit: temporal.Millisecond}, temporal.Second, 1},
		{temporal.Duration{Value: -1500, Unit: temporal.Millisecond}, temporal.Second, -2},
		{temporal.Duration{Value: -1, Unit: temporal.Nanosecond}, temporal.Microsecond, -1},
		{temporal.Duration{Value: 7, Unit: temporal.Microsecond}, temporal.Nanosecond, 7000},
	}
	for _, test := range tests {
		t.Run(test.in.String()+"->"+test.to.String(), func(t *testing.T) {
			got, err := test.in.ConvertTo(test.to)
			require.NoError(t, err)
			assert.Equal(t, test.exp, got.Value)
			assert.Equal(t, test.to, got.Unit)
		})
	}

	_, err := temporal.Duration{Value: math.MaxInt64, Unit: temporal.Second}.ConvertTo(temporal.Nanosecond)
	assert.True(t, errors.Is(err, temporal.ErrOutOfRange))
}

func TestDurationCmp(t *testing.T) {
	ms := temporal.Duration{Value: 1, Unit: temporal.Millisecond}
	assert.Equal(t, 0, ms.Cmp(temporal.Duration{Value: 1000, Unit: temporal.Microsecond}))
	assert.Equal(t, 1, ms.Cmp(temporal.Duration{Value: 999, Unit: temporal.Microsecond}))
	assert.Equal(t, -1, ms.Cmp(temporal.Duration{Value: 1, Unit: temporal.Second}))
	assert.Equal(t, -1, temporal.Duration{Value: -1, Unit: temporal.Nanosecond}.Cmp(temporal.Duration{}))
}

func TestDurationJSON(t *testing.T) {
	b, err := json.Marshal(temporal.Duration{Value: -10, Unit: temporal.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, `"-10ms"`, string(b))

	var d temporal.Duration
	require.NoError(t, json.Unmarshal(b, &d))
	assert.Equal(t, int64(-10), d.Value)
}
