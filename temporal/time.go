// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Time is a time of day in microseconds since midnight, in [0, 24h).
type Time int64

// MaxTime is the last representable time of day, 23:59:59.999999.
const MaxTime = Time(usPerDay - 1)

// ParseTime parses a TIME literal of the form "HH:MM[:SS[.fraction]]".
// Fractions finer than a microsecond are truncated. A trailing Z or UTC
// offset is applied and the result wraps around midnight.
func ParseTime(s string) (Time, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, newErrInvalidTime(s)
	}
	if strings.EqualFold(t, "allballs") {
		return 0, nil
	}

	var f fields
	c := &cursor{s: t}
	switch scanTime(c, &f) {
	case badFormat:
		return 0, newErrInvalidTime(s)
	case badField:
		return 0, newErrTimeFieldRange(s)
	}
	c.spaces()
	if !c.done() {
		return 0, newErrInvalidTime(s)
	}
	return Time(floorMod(f.micros-f.offsetSec*usPerSecond, usPerDay)), nil
}

// MustParseTime is ParseTime that panics on error.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeFromMicros returns the time us microseconds after midnight.
func TimeFromMicros(us int64) (Time, error) {
	if us < 0 || us > int64(MaxTime) {
		return 0, newErrOutOfRange("time", fmt.Sprintf("%d us", us))
	}
	return Time(us), nil
}

// Micros returns microseconds since midnight.
func (t Time) Micros() int64 { return int64(t) }

// Clock returns the hour, minute, second and microsecond of t.
func (t Time) Clock() (hour, min, sec, us int) {
	v := int64(t)
	return int(v / usPerHour), int(v/usPerMinute) % 60, int(v/usPerSecond) % 60, int(v % usPerSecond)
}

// String formats t as "HH:MM:SS[.ffffff]" with trailing fractional zeros
// removed.
func (t Time) String() string {
	h, m, s, us := t.Clock()
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if us != 0 {
		out += "." + strings.TrimRight(fmt.Sprintf("%06d", us), "0")
	}
	return out
}

// MarshalJSON encodes t as a JSON string.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes any literal ParseTime accepts.
func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
