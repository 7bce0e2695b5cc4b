// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package temporal implements the DATE, TIMESTAMP and DURATION value types:
// literal parsing, calendar validation, formatting and conversions.
package temporal

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Date is a calendar day counted from 1970-01-01 in the proleptic Gregorian
// calendar. The extreme int32 values are reserved for infinity.
type Date int32

const (
	DateInfinity    Date = math.MaxInt32
	DateNegInfinity Date = -math.MaxInt32
	DateEpoch       Date = 0

	minDateDays = -math.MaxInt32 + 1
	maxDateDays = math.MaxInt32 - 1
)

// ParseDate parses a DATE literal. Surrounding whitespace is ignored. A time
// of day may follow the date; it is validated and discarded.
func ParseDate(s string) (Date, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, newErrInvalidDate(s)
	}
	switch parseSpecial(t) {
	case specialInfinity:
		return DateInfinity, nil
	case specialNegInfinity:
		return DateNegInfinity, nil
	case specialEpoch:
		return DateEpoch, nil
	}

	f, r := scan(t)
	switch r {
	case badFormat:
		return 0, newErrInvalidDate(s)
	case badField:
		return 0, newErrDateFieldRange(s)
	case badRange:
		return 0, newErrOutOfRange("date", fmt.Sprintf("%q", s))
	}
	return DateFromDays(daysFromCivil(f.year, f.month, f.day))
}

// MustParseDate is ParseDate that panics on error. It is intended for tests
// and static initialization.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDate returns the date for an astronomical year, month and day.
func NewDate(year int64, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return 0, newErrOutOfRange("date", fmt.Sprintf("year %d", year))
	}
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return 0, newErrDateFieldRange(fmt.Sprintf("%d-%d-%d", year, month, day))
	}
	return DateFromDays(daysFromCivil(year, month, day))
}

// DateFromDays returns the date n days after 1970-01-01.
func DateFromDays(n int64) (Date, error) {
	if n < minDateDays || n > maxDateDays {
		return 0, newErrOutOfRange("date", fmt.Sprintf("%d days", n))
	}
	return Date(n), nil
}

// DateFromTime returns the UTC calendar day of t.
func DateFromTime(t time.Time) Date {
	t = t.UTC()
	return Date(daysFromCivil(int64(t.Year()), int(t.Month()), t.Day()))
}

// Days returns the day number.
func (d Date) Days() int64 { return int64(d) }

// IsFinite is false for the infinity sentinels.
func (d Date) IsFinite() bool {
	return d != DateInfinity && d != DateNegInfinity
}

// YMD returns the astronomical year, month and day. It is meaningless for
// infinite dates.
func (d Date) YMD() (year int64, month, day int) {
	return civilFromDays(int64(d))
}

// Timestamp returns midnight UTC of d. Infinite dates map to infinite
// timestamps.
func (d Date) Timestamp() (Timestamp, error) {
	switch d {
	case DateInfinity:
		return TimestampInfinity, nil
	case DateNegInfinity:
		return TimestampNegInfinity, nil
	}
	return newTimestamp(int64(d), 0, 0)
}

// Time returns d as midnight UTC. Infinite and very distant dates are clamped
// by the time package.
func (d Date) Time() time.Time {
	y, m, day := d.YMD()
	return time.Date(int(y), time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD, with a " (BC)" suffix for years before 1.
func (d Date) String() string {
	switch d {
	case DateInfinity:
		return "infinity"
	case DateNegInfinity:
		return "-infinity"
	}
	y, m, day := d.YMD()
	return formatYMD(y, m, day) + eraSuffix(y)
}

func formatYMD(y int64, m, d int) string {
	if y <= 0 {
		y = 1 - y
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func eraSuffix(y int64) string {
	if y <= 0 {
		return " (BC)"
	}
	return ""
}

// MarshalJSON encodes d as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON or any literal
// ParseDate accepts.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
