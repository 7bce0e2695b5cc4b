// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Timestamp is a UTC instant in microseconds since 1970-01-01 00:00:00. The
// extreme int64 values are reserved for infinity.
type Timestamp int64

const (
	TimestampInfinity    Timestamp = math.MaxInt64
	TimestampNegInfinity Timestamp = -math.MaxInt64

	// Day numbers whose midnight fits in int64 microseconds.
	minTimestampDays = -106751992
	maxTimestampDays = 106751991
)

// ParseTimestamp parses a TIMESTAMP literal. The date part follows ParseDate.
// A missing time of day means midnight. An explicit UTC offset is applied so
// the result is always UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, newErrInvalidTimestamp(s)
	}
	switch parseSpecial(t) {
	case specialInfinity:
		return TimestampInfinity, nil
	case specialNegInfinity:
		return TimestampNegInfinity, nil
	case specialEpoch:
		return 0, nil
	}

	f, r := scan(t)
	switch r {
	case badFormat:
		return 0, newErrInvalidTimestamp(s)
	case badField:
		return 0, newErrTimestampFieldRange(s)
	case badRange:
		return 0, newErrOutOfRange("timestamp", fmt.Sprintf("%q", s))
	}
	ts, err := newTimestamp(daysFromCivil(f.year, f.month, f.day), f.micros, f.offsetSec)
	if err != nil {
		return 0, newErrOutOfRange("timestamp", fmt.Sprintf("%q", s))
	}
	return ts, nil
}

// MustParseTimestamp is ParseTimestamp that panics on error.
func MustParseTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// newTimestamp combines a day number, a time of day in microseconds and an
// offset east of UTC in seconds, failing on int64 overflow or if the result
// would collide with a sentinel.
func newTimestamp(days, micros, offsetSec int64) (Timestamp, error) {
	if days < minTimestampDays || days > maxTimestampDays {
		return 0, newErrOutOfRange("timestamp", fmt.Sprintf("%d days", days))
	}
	// Negative days are shifted by one so the multiplication cannot overflow.
	base := days * usPerDay
	if days < 0 {
		base = (days + 1) * usPerDay
		micros -= usPerDay
	}
	v, ok := addChecked(base, micros)
	if ok {
		v, ok = addChecked(v, -offsetSec*usPerSecond)
	}
	if !ok || v == math.MaxInt64 || v <= -math.MaxInt64 {
		return 0, newErrOutOfRange("timestamp", fmt.Sprintf("%d days %d us", days, micros))
	}
	return Timestamp(v), nil
}

func addChecked(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// TimestampFromUnix returns the timestamp sec seconds after the epoch.
func TimestampFromUnix(sec int64) (Timestamp, error) {
	return newTimestamp(floorDiv(sec, secondsInDay), floorMod(sec, secondsInDay)*usPerSecond, 0)
}

// TimestampFromTime converts t, truncating below microseconds.
func TimestampFromTime(t time.Time) (Timestamp, error) {
	t = t.UTC()
	days := daysFromCivil(int64(t.Year()), int(t.Month()), t.Day())
	tod := int64(t.Hour())*usPerHour + int64(t.Minute())*usPerMinute +
		int64(t.Second())*usPerSecond + int64(t.Nanosecond()/1000)
	return newTimestamp(days, tod, 0)
}

// IsFinite is false for the infinity sentinels.
func (t Timestamp) IsFinite() bool {
	return t != TimestampInfinity && t != TimestampNegInfinity
}

// Micros returns microseconds since the epoch.
func (t Timestamp) Micros() int64 { return int64(t) }

// Unix returns whole seconds since the epoch, rounded toward negative
// infinity.
func (t Timestamp) Unix() int64 {
	return floorDiv(int64(t), usPerSecond)
}

func (t Timestamp) split() (days, tod int64) {
	days = floorDiv(int64(t), usPerDay)
	return days, int64(t) - days*usPerDay
}

// Date truncates t to its UTC calendar day.
func (t Timestamp) Date() Date {
	switch t {
	case TimestampInfinity:
		return DateInfinity
	case TimestampNegInfinity:
		return DateNegInfinity
	}
	days, _ := t.split()
	return Date(days)
}

// Time returns t as a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMicro(int64(t)).UTC()
}

// String formats t as "YYYY-MM-DD HH:MM:SS[.ffffff]" with trailing fractional
// zeros removed.
func (t Timestamp) String() string {
	switch t {
	case TimestampInfinity:
		return "infinity"
	case TimestampNegInfinity:
		return "-infinity"
	}
	days, tod := t.split()
	y, m, d := civilFromDays(days)

	var sb strings.Builder
	sb.WriteString(formatYMD(y, m, d))
	fmt.Fprintf(&sb, " %02d:%02d:%02d", tod/usPerHour, (tod/usPerMinute)%60, (tod/usPerSecond)%60)
	if us := tod % usPerSecond; us != 0 {
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(fmt.Sprintf("%06d", us), "0"))
	}
	sb.WriteString(eraSuffix(y))
	return sb.String()
}

// MarshalJSON encodes t as a JSON string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes any literal ParseTimestamp accepts.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
