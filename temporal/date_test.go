// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in  string
		exp string
	}{
		{"1992-01-01", "1992-01-01"},
		{"1992-02-29", "1992-02-29"},
		{"2000-02-29", "2000-02-29"},
		{"1900-1-1", "1900-01-01"},
		{"1992/09/20", "1992-09-20"},
		{"1992.9.20", "1992-09-20"},
		{"1992 09 20", "1992-09-20"},
		{"  1992-09-20  ", "1992-09-20"},
		{"0044-03-15 BC", "0044-03-15 (BC)"},
		{"0001-01-01 (BC)", "0001-01-01 (BC)"},
		{"0001-01-01 AD", "0001-01-01"},
		{"0000-01-01", "0001-01-01 (BC)"},
		{"-1-01-01", "0002-01-01 (BC)"},
		{"12345-06-07", "12345-06-07"},
		{"5881580-07-10", "5881580-07-10"},
		{"5877642-06-25 (BC)", "5877642-06-25 (BC)"},
		{"1992-01-01 12:34:56", "1992-01-01"},
		{"1992-01-01T23:59:59.999999Z", "1992-01-01"},
		{"infinity", "infinity"},
		{"+Infinity", "infinity"},
		{"-infinity", "-infinity"},
		{"EPOCH", "1970-01-01"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d, err := temporal.ParseDate(test.in)
			require.NoError(t, err)
			assert.Equal(t, test.exp, d.String())
		})
	}
}

func TestParseDateErrors(t *testing.T) {
	tests := []struct {
		in   string
		code errors.Code
	}{
		{"", temporal.ErrInvalidDate},
		{"    ", temporal.ErrInvalidDate},
		{"1993-02-29", temporal.ErrInvalidDate},
		{"1900-02-29", temporal.ErrInvalidDate},
		{"1992-13-01", temporal.ErrInvalidDate},
		{"1992-00-01", temporal.ErrInvalidDate},
		{"1992-04-31", temporal.ErrInvalidDate},
		{"1992-01-00", temporal.ErrInvalidDate},
		{"1992-01-32", temporal.ErrInvalidDate},
		{"0000-01-01 BC", temporal.ErrInvalidDate},
		{"-5-01-01 BC", temporal.ErrInvalidDate},
		{"1992-01/01", temporal.ErrInvalidDate},
		{"1992-001-01", temporal.ErrInvalidDate},
		{"1992-01-01x", temporal.ErrInvalidDate},
		{"1992-01-01 BCE", temporal.ErrInvalidDate},
		{"1992", temporal.ErrInvalidDate},
		{"hello", temporal.ErrInvalidDate},
		{"1992-01-01T", temporal.ErrInvalidDate},
		{"1992-01-01 25:00:00", temporal.ErrInvalidDate},
		{"5881580-07-11", temporal.ErrOutOfRange},
		{"5877642-06-24 (BC)", temporal.ErrOutOfRange},
		{"99999999-01-01", temporal.ErrOutOfRange},
		{"9999999999-01-01", temporal.ErrOutOfRange},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			_, err := temporal.ParseDate(test.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.code), "got %v", err)
		})
	}
}

func TestLeapYears(t *testing.T) {
	for y, exp := range map[int64]bool{
		1992: true, 1993: false, 1900: false, 2000: true, 2100: false, 2400: true, 0: true, -4: true, -100: false,
	} {
		assert.Equal(t, exp, temporal.IsLeapYear(y), "year %d", y)
	}
	assert.Equal(t, 29, temporal.DaysInMonth(2000, 2))
	assert.Equal(t, 28, temporal.DaysInMonth(1900, 2))
	assert.Equal(t, 0, temporal.DaysInMonth(1900, 13))
}

func TestDateConversions(t *testing.T) {
	d := temporal.MustParseDate("2022-03-04")
	assert.Equal(t, int64(19055), d.Days())

	y, m, day := d.YMD()
	assert.Equal(t, []int64{2022, 3, 4}, []int64{y, int64(m), int64(day)})
	assert.Equal(t, time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, d, temporal.DateFromTime(time.Date(2022, 3, 4, 23, 0, 0, 0, time.UTC)))

	ts, err := d.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, "2022-03-04 00:00:00", ts.String())

	ts, err = temporal.DateInfinity.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, temporal.TimestampInfinity, ts)

	_, err = temporal.MustParseDate("5881580-07-10").Timestamp()
	assert.True(t, errors.Is(err, temporal.ErrOutOfRange))

	nd, err := temporal.NewDate(-43, 3, 15)
	require.NoError(t, err)
	assert.Equal(t, "0044-03-15 (BC)", nd.String())

	_, err = temporal.NewDate(2023, 2, 29)
	assert.True(t, errors.Is(err, temporal.ErrInvalidDate))

	_, err = temporal.DateFromDays(int64(temporal.DateInfinity))
	assert.True(t, errors.Is(err, temporal.ErrOutOfRange))
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal([]temporal.Date{temporal.MustParseDate("1992-02-29"), temporal.DateNegInfinity})
	require.NoError(t, err)
	assert.Equal(t, `["1992-02-29","-infinity"]`, string(b))

	var out []temporal.Date
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, temporal.MustParseDate("1992-02-29"), out[0])
	assert.Equal(t, temporal.DateNegInfinity, out[1])

	var d temporal.Date
	assert.Error(t, json.Unmarshal([]byte(`"1993-02-29"`), &d))
}
