// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

import (
	"encoding/json"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Unit is the resolution of a Duration.
type Unit int8

const (
	Second Unit = iota
	Millisecond
	Microsecond
	Nanosecond
)

// nanos returns the number of nanoseconds in one u.
func (u Unit) nanos() int64 {
	switch u {
	case Second:
		return 1e9
	case Millisecond:
		return 1e6
	case Microsecond:
		return 1e3
	default:
		return 1
	}
}

// String returns the unit suffix used in duration literals.
func (u Unit) String() string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	case Nanosecond:
		return "ns"
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// ParseUnit parses a unit suffix.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(s) {
	case "s":
		return Second, true
	case "ms":
		return Millisecond, true
	case "us":
		return Microsecond, true
	case "ns":
		return Nanosecond, true
	}
	return 0, false
}

// Duration is a signed length of time at a fixed unit.
type Duration struct {
	Value int64
	Unit  Unit
}

// ParseDuration parses literals such as "123s", "-10ms", "100us" or "5 ns".
func ParseDuration(s string) (Duration, error) {
	t := strings.TrimSpace(s)
	i := 0
	if i < len(t) && (t[i] == '-' || t[i] == '+') {
		i++
	}
	start := i
	for i < len(t) && isDigit(t[i]) {
		i++
	}
	if i == start {
		return Duration{}, newErrInvalidDuration(s)
	}
	unit, ok := ParseUnit(strings.TrimSpace(t[i:]))
	if !ok {
		return Duration{}, newErrInvalidDuration(s)
	}
	v, err := strconv.ParseInt(t[:i], 10, 64)
	if err != nil {
		return Duration{}, newErrOutOfRange("duration", strconv.Quote(s))
	}
	return Duration{Value: v, Unit: unit}, nil
}

// split returns whole seconds, rounded toward negative infinity, and the
// non-negative nanosecond remainder.
func (d Duration) split() (sec, nsec int64) {
	perSec := Second.nanos() / d.Unit.nanos()
	sec = floorDiv(d.Value, perSec)
	return sec, floorMod(d.Value, perSec) * d.Unit.nanos()
}

// ConvertTo expresses d in unit u. Converting to a coarser unit rounds toward
// negative infinity. An error is returned if the result overflows int64.
func (d Duration) ConvertTo(u Unit) (Duration, error) {
	if d.Unit == u {
		return d, nil
	}
	sec, nsec := d.split()
	perSec := Second.nanos() / u.nanos()
	hi, lo := bits.Mul64(uint64(abs(sec)), uint64(perSec))
	if hi != 0 || lo > math.MaxInt64 {
		return Duration{}, newErrOutOfRange("duration", d.String()+" as "+u.String())
	}
	v := int64(lo)
	if sec < 0 {
		v = -v
	}
	v, ok := addChecked(v, nsec/u.nanos())
	if !ok {
		return Duration{}, newErrOutOfRange("duration", d.String()+" as "+u.String())
	}
	return Duration{Value: v, Unit: u}, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Cmp compares d and o as lengths of time, returning -1, 0 or +1.
func (d Duration) Cmp(o Duration) int {
	ds, dn := d.split()
	os, on := o.split()
	switch {
	case ds < os:
		return -1
	case ds > os:
		return 1
	case dn < on:
		return -1
	case dn > on:
		return 1
	}
	return 0
}

// String formats d as value followed by the unit suffix.
func (d Duration) String() string {
	return strconv.FormatInt(d.Value, 10) + d.Unit.String()
}

// MarshalJSON encodes d as a JSON string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a duration literal.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
