// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package toml holds configuration value types that round-trip through TOML
// files, environment variables and command line flags.
package toml

import (
	"strings"
	"time"
)

// Duration is a TOML wrapper type for time.Duration. It also satisfies
// pflag.Value so it can be bound directly to a flag.
type Duration time.Duration

// String returns the string representation of the duration.
func (d Duration) String() string { return time.Duration(d).String() }

// Set parses s as a duration; it is the pflag.Value setter.
func (d *Duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Type names the flag value type in help output.
func (d *Duration) Type() string { return "duration" }

// UnmarshalText parses a TOML value into a duration value.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText writes duration value in text format.
func (d Duration) MarshalText() (text []byte, err error) {
	return []byte(d.String()), nil
}

// MarshalTOML writes the duration as a quoted TOML string.
func (d Duration) MarshalTOML() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
