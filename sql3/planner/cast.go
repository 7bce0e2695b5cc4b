// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"math"
	"strconv"
	"strings"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/temporal"
)

// CastOptions controls how Cast treats failures.
type CastOptions struct {
	// Strict casts return an error for values that cannot be converted.
	// Non-strict casts (TRY_CAST) return nil instead.
	Strict bool
}

// CanCast reports whether values of type from may be cast to type to. NULL
// can be cast to anything.
func CanCast(from, to parser.ExprDataType) bool {
	switch from.(type) {
	case *parser.DataTypeVoid:
		return true
	case *parser.DataTypeBool:
		switch to.(type) {
		case *parser.DataTypeBool, *parser.DataTypeInt, *parser.DataTypeFloat, *parser.DataTypeString:
			return true
		}
	case *parser.DataTypeInt:
		switch to.(type) {
		case *parser.DataTypeBool, *parser.DataTypeInt, *parser.DataTypeDecimal, *parser.DataTypeFloat, *parser.DataTypeString,
			*parser.DataTypeDate, *parser.DataTypeTimestamp, *parser.DataTypeTime, *parser.DataTypeDuration:
			return true
		}
	case *parser.DataTypeDecimal, *parser.DataTypeFloat:
		switch to.(type) {
		case *parser.DataTypeBool, *parser.DataTypeInt, *parser.DataTypeDecimal, *parser.DataTypeFloat, *parser.DataTypeString:
			return true
		}
	case *parser.DataTypeString:
		return true
	case *parser.DataTypeDate:
		switch to.(type) {
		case *parser.DataTypeInt, *parser.DataTypeString, *parser.DataTypeDate, *parser.DataTypeTimestamp:
			return true
		}
	case *parser.DataTypeTimestamp:
		switch to.(type) {
		case *parser.DataTypeInt, *parser.DataTypeString, *parser.DataTypeDate, *parser.DataTypeTimestamp:
			return true
		}
	case *parser.DataTypeTime:
		switch to.(type) {
		case *parser.DataTypeInt, *parser.DataTypeString, *parser.DataTypeTime:
			return true
		}
	case *parser.DataTypeDuration:
		switch to.(type) {
		case *parser.DataTypeInt, *parser.DataTypeString, *parser.DataTypeDuration:
			return true
		}
	}
	return false
}

// Cast converts value, of type from, to type to. A nil value is NULL and
// always casts to NULL. atPos is used to position errors and may be the zero
// Pos.
func Cast(value interface{}, from, to parser.ExprDataType, opts CastOptions, atPos parser.Pos) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if !CanCast(from, to) {
		if !opts.Strict {
			return nil, nil
		}
		return nil, sql3.NewErrInvalidCast(atPos.Line, atPos.Column, from.TypeDescription(), to.TypeDescription())
	}

	out, err := convert(value, from, to)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, sql3.ErrInternal) {
		return nil, err
	}
	if !opts.Strict {
		return nil, nil
	}
	return nil, sql3.NewErrCastFailed(atPos.Line, atPos.Column, FormatValue(value), to.TypeDescription(), err, isOutOfRange(err))
}

func isOutOfRange(err error) bool {
	return errors.Is(err, decimal.ErrOutOfRange) ||
		errors.Is(err, temporal.ErrOutOfRange) ||
		errors.Is(err, sql3.ErrOutOfRange)
}

// errValueOutOfRange marks conversions whose result does not fit the target
// type.
func errValueOutOfRange(format string, a ...interface{}) error {
	return errors.Newf(sql3.ErrOutOfRange, format, a...)
}

func convert(value interface{}, from, to parser.ExprDataType) (interface{}, error) {
	switch from.(type) {
	case *parser.DataTypeBool:
		v, ok := value.(bool)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castBool(v, to)

	case *parser.DataTypeInt:
		v, ok := value.(int64)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castInt(v, to)

	case *parser.DataTypeDecimal:
		v, ok := value.(decimal.Decimal)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castDecimal(v, to)

	case *parser.DataTypeFloat:
		v, ok := value.(float64)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castFloat(v, to)

	case *parser.DataTypeString:
		v, ok := value.(string)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castString(v, to)

	case *parser.DataTypeDate:
		v, ok := value.(temporal.Date)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castDate(v, to)

	case *parser.DataTypeTimestamp:
		v, ok := value.(temporal.Timestamp)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castTimestamp(v, to)

	case *parser.DataTypeTime:
		v, ok := value.(temporal.Time)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castTime(v, to)

	case *parser.DataTypeDuration:
		v, ok := value.(temporal.Duration)
		if !ok {
			return nil, unexpectedValue(value, from)
		}
		return castDuration(v, to)
	}
	return nil, sql3.NewErrInternalf("unhandled cast from '%s' to '%s'", from.TypeDescription(), to.TypeDescription())
}

func unexpectedValue(value interface{}, typ parser.ExprDataType) error {
	return sql3.NewErrInternalf("unexpected value of type '%T' for '%s'", value, typ.TypeDescription())
}

func castBool(v bool, to parser.ExprDataType) (interface{}, error) {
	switch to.(type) {
	case *parser.DataTypeBool:
		return v, nil
	case *parser.DataTypeInt:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case *parser.DataTypeFloat:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case *parser.DataTypeString:
		return strconv.FormatBool(v), nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from bool to '%s'", to.TypeDescription())
}

func castInt(v int64, to parser.ExprDataType) (interface{}, error) {
	switch tt := to.(type) {
	case *parser.DataTypeBool:
		return v != 0, nil
	case *parser.DataTypeInt:
		return v, nil
	case *parser.DataTypeDecimal:
		return decimal.FromInt64(v, tt.Width, tt.Scale)
	case *parser.DataTypeFloat:
		return float64(v), nil
	case *parser.DataTypeString:
		return strconv.FormatInt(v, 10), nil
	case *parser.DataTypeDate:
		return temporal.DateFromDays(v)
	case *parser.DataTypeTimestamp:
		return temporal.TimestampFromUnix(v)
	case *parser.DataTypeTime:
		return temporal.TimeFromMicros(v)
	case *parser.DataTypeDuration:
		return temporal.Duration{Value: v, Unit: temporal.Millisecond}, nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from int to '%s'", to.TypeDescription())
}

func castDecimal(v decimal.Decimal, to parser.ExprDataType) (interface{}, error) {
	switch tt := to.(type) {
	case *parser.DataTypeBool:
		return !v.IsZero(), nil
	case *parser.DataTypeInt:
		return v.Int64()
	case *parser.DataTypeDecimal:
		return v.Rescale(tt.Width, tt.Scale)
	case *parser.DataTypeFloat:
		return v.Float64(), nil
	case *parser.DataTypeString:
		return v.String(), nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from decimal to '%s'", to.TypeDescription())
}

func castFloat(v float64, to parser.ExprDataType) (interface{}, error) {
	switch tt := to.(type) {
	case *parser.DataTypeBool:
		return v != 0, nil
	case *parser.DataTypeInt:
		t := math.Trunc(v)
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return nil, errValueOutOfRange("value %s is out of range for int", FormatValue(v))
		}
		return int64(t), nil
	case *parser.DataTypeDecimal:
		return decimal.ParseDecimalType(strconv.FormatFloat(v, 'f', -1, 64), tt.Width, tt.Scale)
	case *parser.DataTypeFloat:
		return v, nil
	case *parser.DataTypeString:
		return FormatValue(v), nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from float to '%s'", to.TypeDescription())
}

func castString(v string, to parser.ExprDataType) (interface{}, error) {
	switch tt := to.(type) {
	case *parser.DataTypeBool:
		return parseBool(v)
	case *parser.DataTypeInt:
		return parseInt(v)
	case *parser.DataTypeDecimal:
		return decimal.ParseDecimalType(v, tt.Width, tt.Scale)
	case *parser.DataTypeFloat:
		return parseFloat(v)
	case *parser.DataTypeString:
		return v, nil
	case *parser.DataTypeDate:
		return temporal.ParseDate(v)
	case *parser.DataTypeTimestamp:
		return temporal.ParseTimestamp(v)
	case *parser.DataTypeTime:
		return temporal.ParseTime(v)
	case *parser.DataTypeDuration:
		return temporal.ParseDuration(v)
	}
	return nil, sql3.NewErrInternalf("unhandled cast from string to '%s'", to.TypeDescription())
}

func castDate(v temporal.Date, to parser.ExprDataType) (interface{}, error) {
	switch to.(type) {
	case *parser.DataTypeInt:
		if !v.IsFinite() {
			return nil, errValueOutOfRange("date %s has no integer value", v)
		}
		return v.Days(), nil
	case *parser.DataTypeString:
		return v.String(), nil
	case *parser.DataTypeDate:
		return v, nil
	case *parser.DataTypeTimestamp:
		return v.Timestamp()
	}
	return nil, sql3.NewErrInternalf("unhandled cast from date to '%s'", to.TypeDescription())
}

func castTimestamp(v temporal.Timestamp, to parser.ExprDataType) (interface{}, error) {
	switch to.(type) {
	case *parser.DataTypeInt:
		if !v.IsFinite() {
			return nil, errValueOutOfRange("timestamp %s has no integer value", v)
		}
		return v.Unix(), nil
	case *parser.DataTypeString:
		return v.String(), nil
	case *parser.DataTypeDate:
		return v.Date(), nil
	case *parser.DataTypeTimestamp:
		return v, nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from timestamp to '%s'", to.TypeDescription())
}

func castTime(v temporal.Time, to parser.ExprDataType) (interface{}, error) {
	switch to.(type) {
	case *parser.DataTypeInt:
		return v.Micros(), nil
	case *parser.DataTypeString:
		return v.String(), nil
	case *parser.DataTypeTime:
		return v, nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from time to '%s'", to.TypeDescription())
}

// castDuration converts to INT as whole milliseconds, the unit INT values
// take when cast to DURATION.
func castDuration(v temporal.Duration, to parser.ExprDataType) (interface{}, error) {
	switch to.(type) {
	case *parser.DataTypeInt:
		ms, err := v.ConvertTo(temporal.Millisecond)
		if err != nil {
			return nil, err
		}
		return ms.Value, nil
	case *parser.DataTypeString:
		return v.String(), nil
	case *parser.DataTypeDuration:
		return v, nil
	}
	return nil, sql3.NewErrInternalf("unhandled cast from duration to '%s'", to.TypeDescription())
}

// parseBool accepts the usual SQL spellings of a boolean, ignoring case and
// surrounding whitespace.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "y", "yes", "on", "1":
		return true, nil
	case "f", "false", "n", "no", "off", "0":
		return false, nil
	}
	return false, errors.Newf(sql3.ErrInvalidCast, "invalid boolean %q", s)
}

// parseFloat parses a finite float, ignoring surrounding whitespace. NaN and
// infinities are rejected.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errValueOutOfRange("value %q is out of range for float", s)
		}
		return 0, errors.Newf(sql3.ErrInvalidCast, "invalid float %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Newf(sql3.ErrInvalidCast, "invalid float %q", s)
	}
	return v, nil
}

// parseInt parses a base-10 integer, ignoring surrounding whitespace.
func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errValueOutOfRange("value %q is out of range for int (%d to %d)", s, int64(math.MinInt64), int64(math.MaxInt64))
		}
		return 0, errors.Newf(sql3.ErrInvalidCast, "invalid integer %q", s)
	}
	return v, nil
}
