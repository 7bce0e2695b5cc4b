// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package toml_test

import (
	"testing"
	"time"

	"github.com/featurebasedb/sqlcast/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	var d toml.Duration
	require.NoError(t, d.UnmarshalText([]byte(" 1m30s ")))
	require.Equal(t, 90*time.Second, time.Duration(d))

	b, err := d.MarshalTOML()
	require.NoError(t, err)
	require.Equal(t, `"1m30s"`, string(b))

	require.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestDurationFlag(t *testing.T) {
	d := toml.Duration(time.Second)
	fs := pflag.NewFlagSet("t", pflag.ContinueOnError)
	fs.Var(&d, "timeout", "")
	require.NoError(t, fs.Parse([]string{"--timeout", "250ms"}))
	require.Equal(t, 250*time.Millisecond, time.Duration(d))
}
