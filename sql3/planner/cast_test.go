// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"testing"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tBool      = parser.NewDataTypeBool()
	tInt       = parser.NewDataTypeInt()
	tString    = parser.NewDataTypeString()
	tDate      = parser.NewDataTypeDate()
	tTimestamp = parser.NewDataTypeTimestamp()
	tDuration  = parser.NewDataTypeDuration()
	tFloat     = parser.NewDataTypeFloat()
	tTime      = parser.NewDataTypeTime()
	tVoid      = parser.NewDataTypeVoid()
)

func tDecimal(width, scale int64) parser.ExprDataType {
	return parser.NewDataTypeDecimal(width, scale)
}

func TestCast(t *testing.T) {
	type args struct {
		value interface{}
		from  parser.ExprDataType
		to    parser.ExprDataType
	}
	tests := []struct {
		name string
		args args
		// want is compared as formatted SQL text
		want    string
		wantErr errors.Code
	}{
		// dates
		{name: "leap-day-1992", args: args{"1992-02-29", tString, tDate}, want: "1992-02-29"},
		{name: "leap-day-2000", args: args{"2000-02-29", tString, tDate}, want: "2000-02-29"},
		{name: "non-leap-1993", args: args{"1993-02-29", tString, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "non-leap-1900", args: args{"1900-02-29", tString, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "single-digit-fields", args: args{"1900-1-1", tString, tDate}, want: "1900-01-01"},
		{name: "empty-date", args: args{"", tString, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "blank-date", args: args{"    ", tString, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "month-13", args: args{"2020-13-01", tString, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "date-infinity", args: args{"infinity", tString, tDate}, want: "infinity"},
		{name: "int-date", args: args{int64(19), tInt, tDate}, want: "1970-01-20"},
		{name: "date-int", args: args{temporal.MustParseDate("1970-01-20"), tDate, tInt}, want: "19"},
		{name: "date-infinity-int", args: args{temporal.DateInfinity, tDate, tInt}, wantErr: sql3.ErrOutOfRange},
		{name: "date-timestamp", args: args{temporal.MustParseDate("1992-01-01"), tDate, tTimestamp}, want: "1992-01-01 00:00:00"},
		{name: "date-string", args: args{temporal.MustParseDate("1992-01-01"), tDate, tString}, want: "1992-01-01"},

		// timestamps
		{name: "string-timestamp", args: args{"1992-01-01 12:30:45.5", tString, tTimestamp}, want: "1992-01-01 12:30:45.5"},
		{name: "string-timestamp-date-only", args: args{"1992-01-01", tString, tTimestamp}, want: "1992-01-01 00:00:00"},
		{name: "string-timestamp-invalid", args: args{"1992-01-01 25:00:00", tString, tTimestamp}, wantErr: sql3.ErrInvalidCast},
		{name: "int-timestamp", args: args{int64(0), tInt, tTimestamp}, want: "1970-01-01 00:00:00"},
		{name: "timestamp-date", args: args{temporal.MustParseTimestamp("1992-01-01 23:59:59"), tTimestamp, tDate}, want: "1992-01-01"},
		{name: "timestamp-int", args: args{temporal.MustParseTimestamp("1970-01-01 00:01:00"), tTimestamp, tInt}, want: "60"},

		// decimals
		{name: "decimal-fits-scale", args: args{"0.1", tString, tDecimal(3, 3)}, want: "0.100"},
		{name: "decimal-out-of-range", args: args{"1", tString, tDecimal(3, 3)}, wantErr: sql3.ErrOutOfRange},
		{name: "decimal-truncates", args: args{"1.23456", tString, tDecimal(10, 2)}, want: "1.23"},
		{name: "decimal-truncates-negative", args: args{"-1.239", tString, tDecimal(10, 2)}, want: "-1.23"},
		{name: "decimal-garbage", args: args{"1.2.3", tString, tDecimal(10, 2)}, wantErr: sql3.ErrInvalidCast},
		{name: "int-decimal", args: args{int64(42), tInt, tDecimal(4, 2)}, want: "42.00"},
		{name: "int-decimal-out-of-range", args: args{int64(420), tInt, tDecimal(4, 2)}, wantErr: sql3.ErrOutOfRange},
		{name: "decimal-int", args: args{decimal.MustParseDecimal("-12.5"), tDecimal(3, 1), tInt}, want: "-12"},
		{name: "decimal-rescale", args: args{decimal.MustParseDecimal("12.59"), tDecimal(4, 2), tDecimal(3, 1)}, want: "12.5"},
		{name: "decimal-bool", args: args{decimal.MustParseDecimal("0.0"), tDecimal(2, 1), tBool}, want: "false"},

		// scalars
		{name: "string-int", args: args{" 42 ", tString, tInt}, want: "42"},
		{name: "string-int-overflow", args: args{"9223372036854775808", tString, tInt}, wantErr: sql3.ErrOutOfRange},
		{name: "string-int-garbage", args: args{"4x2", tString, tInt}, wantErr: sql3.ErrInvalidCast},
		{name: "string-bool", args: args{"Yes", tString, tBool}, want: "true"},
		{name: "string-bool-garbage", args: args{"maybe", tString, tBool}, wantErr: sql3.ErrInvalidCast},
		{name: "bool-int", args: args{true, tBool, tInt}, want: "1"},
		{name: "int-bool", args: args{int64(0), tInt, tBool}, want: "false"},
		{name: "int-string", args: args{int64(-7), tInt, tString}, want: "-7"},

		// durations
		{name: "string-duration", args: args{"1500ms", tString, tDuration}, want: "1500ms"},
		{name: "duration-int", args: args{temporal.Duration{Value: 1500, Unit: temporal.Millisecond}, tDuration, tInt}, want: "1500"},
		{name: "duration-int-negative", args: args{temporal.Duration{Value: -1500, Unit: temporal.Millisecond}, tDuration, tInt}, want: "-1500"},
		{name: "duration-int-seconds", args: args{temporal.Duration{Value: 90, Unit: temporal.Second}, tDuration, tInt}, want: "90000"},
		{name: "duration-int-floors", args: args{temporal.Duration{Value: -1500, Unit: temporal.Microsecond}, tDuration, tInt}, want: "-2"},
		{name: "int-duration", args: args{int64(3), tInt, tDuration}, want: "3ms"},

		// times
		{name: "string-time", args: args{"12:30:45.5", tString, tTime}, want: "12:30:45.5"},
		{name: "string-time-invalid", args: args{"25:00", tString, tTime}, wantErr: sql3.ErrInvalidCast},
		{name: "string-time-garbage", args: args{"noon", tString, tTime}, wantErr: sql3.ErrInvalidCast},
		{name: "time-int", args: args{temporal.MustParseTime("00:00:01.5"), tTime, tInt}, want: "1500000"},
		{name: "int-time", args: args{int64(3600000000), tInt, tTime}, want: "01:00:00"},
		{name: "int-time-out-of-range", args: args{int64(-1), tInt, tTime}, wantErr: sql3.ErrOutOfRange},
		{name: "time-string", args: args{temporal.MustParseTime("7:05"), tTime, tString}, want: "07:05:00"},
		{name: "time-date", args: args{temporal.MustParseTime("7:05"), tTime, tDate}, wantErr: sql3.ErrInvalidCast},

		// floats
		{name: "string-float", args: args{" 1.25 ", tString, tFloat}, want: "1.25"},
		{name: "string-float-exponent", args: args{"1e21", tString, tFloat}, want: "1e+21"},
		{name: "string-float-nan", args: args{"NaN", tString, tFloat}, wantErr: sql3.ErrInvalidCast},
		{name: "string-float-overflow", args: args{"1e400", tString, tFloat}, wantErr: sql3.ErrOutOfRange},
		{name: "float-int", args: args{-2.75, tFloat, tInt}, want: "-2"},
		{name: "float-int-overflow", args: args{1e19, tFloat, tInt}, wantErr: sql3.ErrOutOfRange},
		{name: "float-decimal", args: args{2.5, tFloat, tDecimal(4, 2)}, want: "2.50"},
		{name: "float-decimal-out-of-range", args: args{1234.5, tFloat, tDecimal(4, 2)}, wantErr: sql3.ErrOutOfRange},
		{name: "decimal-float", args: args{decimal.MustParseDecimal("-0.125"), tDecimal(3, 3), tFloat}, want: "-0.125"},
		{name: "int-float", args: args{int64(7), tInt, tFloat}, want: "7"},
		{name: "bool-float", args: args{true, tBool, tFloat}, want: "1"},
		{name: "float-bool", args: args{0.0, tFloat, tBool}, want: "false"},
		{name: "float-string", args: args{0.1, tFloat, tString}, want: "0.1"},
		{name: "float-date", args: args{1.0, tFloat, tDate}, wantErr: sql3.ErrInvalidCast},

		// incompatible
		{name: "date-bool", args: args{temporal.DateEpoch, tDate, tBool}, wantErr: sql3.ErrInvalidCast},
		{name: "bool-date", args: args{true, tBool, tDate}, wantErr: sql3.ErrInvalidCast},
		{name: "decimal-date", args: args{decimal.MustParseDecimal("1.5"), tDecimal(2, 1), tDate}, wantErr: sql3.ErrInvalidCast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.args.value, tt.args.from, tt.args.to, CastOptions{Strict: true}, parser.Pos{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %s, got %v", tt.wantErr, err)

				// TRY_CAST turns the same failure into NULL
				got, err = Cast(tt.args.value, tt.args.from, tt.args.to, CastOptions{Strict: false}, parser.Pos{})
				require.NoError(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatValue(got))
		})
	}
}

func TestCast_Null(t *testing.T) {
	for _, to := range []parser.ExprDataType{tBool, tInt, tDecimal(18, 3), tFloat, tString, tDate, tTimestamp, tTime, tDuration} {
		t.Run(to.TypeDescription(), func(t *testing.T) {
			got, err := Cast(nil, tVoid, to, CastOptions{Strict: true}, parser.Pos{})
			require.NoError(t, err)
			assert.Nil(t, got)

			got, err = Cast(nil, tString, to, CastOptions{Strict: true}, parser.Pos{})
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestCast_ErrorMessages(t *testing.T) {
	at := parser.Pos{Line: 1, Column: 11}

	t.Run("Incompatible", func(t *testing.T) {
		_, err := Cast(true, tBool, tDate, CastOptions{Strict: true}, at)
		assert.EqualError(t, err, `[1:11] 'bool' cannot be cast to 'date'`)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := Cast("1", tString, tDecimal(3, 3), CastOptions{Strict: true}, at)
		assert.EqualError(t, err, `[1:11] value '1' is out of range for type 'decimal(3,3)': value "1" is out of range for DECIMAL(3,3)`)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		_, err := Cast("maybe", tString, tBool, CastOptions{Strict: true}, at)
		assert.EqualError(t, err, `[1:11] could not convert 'maybe' to 'bool': invalid boolean "maybe"`)
	})

	t.Run("NoPosition", func(t *testing.T) {
		_, err := Cast("maybe", tString, tBool, CastOptions{Strict: true}, parser.Pos{})
		assert.EqualError(t, err, `could not convert 'maybe' to 'bool': invalid boolean "maybe"`)
	})

	t.Run("InternalNotSuppressed", func(t *testing.T) {
		_, err := Cast("1", tInt, tString, CastOptions{Strict: false}, at)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sql3.ErrInternal))
	})
}

func TestCanCast(t *testing.T) {
	all := []parser.ExprDataType{tBool, tInt, tDecimal(18, 3), tFloat, tString, tDate, tTimestamp, tTime, tDuration}
	allowed := map[string][]string{
		"bool":      {"bool", "int", "float", "string"},
		"int":       {"bool", "int", "decimal", "float", "string", "date", "timestamp", "time", "duration"},
		"decimal":   {"bool", "int", "decimal", "float", "string"},
		"float":     {"bool", "int", "decimal", "float", "string"},
		"string":    {"bool", "int", "decimal", "float", "string", "date", "timestamp", "time", "duration"},
		"date":      {"int", "string", "date", "timestamp"},
		"timestamp": {"int", "string", "date", "timestamp"},
		"time":      {"int", "string", "time"},
		"duration":  {"int", "string", "duration"},
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, name := range allowed[from.BaseTypeName()] {
				if name == to.BaseTypeName() {
					want = true
				}
			}
			assert.Equal(t, want, CanCast(from, to), "%s -> %s", from.BaseTypeName(), to.BaseTypeName())
		}
		assert.True(t, CanCast(tVoid, from))
	}
}

func TestFormatValue(t *testing.T) {
	for _, tt := range []struct {
		v    interface{}
		want string
	}{
		{nil, "NULL"},
		{true, "true"},
		{int64(-3), "-3"},
		{"it's", "it's"},
		{decimal.MustParseDecimal("1.50"), "1.5"},
		{temporal.MustParseDate("0044-03-15 BC"), "0044-03-15 (BC)"},
		{temporal.TimestampInfinity, "infinity"},
		{temporal.MustParseTime("23:59:59.25"), "23:59:59.25"},
		{1.5, "1.5"},
		{float64(100), "100"},
		{temporal.Duration{Value: -2, Unit: temporal.Microsecond}, "-2us"},
	} {
		assert.Equal(t, tt.want, FormatValue(tt.v))
	}
}
