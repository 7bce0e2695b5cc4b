// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package server

import (
	"testing"
	"time"

	"github.com/featurebasedb/sqlcast/toml"
	gotoml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, DefaultBind, c.Bind)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, toml.Duration(30*time.Second), c.Handler.CloseTimeout)
	assert.Equal(t, toml.Duration(time.Minute), c.Query.Timeout)
	assert.Equal(t, 4, c.Query.CastParallelism)
	assert.NoError(t, c.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		expErr string
	}{
		{
			name:   "Parallelism",
			modify: func(c *Config) { c.Query.CastParallelism = 0 },
			expErr: "query.cast-parallelism must be at least 1, got 0",
		},
		{
			name:   "NegativeTimeout",
			modify: func(c *Config) { c.Query.Timeout = toml.Duration(-time.Second) },
			expErr: "query.timeout must not be negative, got -1s",
		},
		{
			name:   "LogLevel",
			modify: func(c *Config) { c.LogLevel = "loud" },
			expErr: "invalid log-level 'loud'",
		},
		{
			name:   "Scheme",
			modify: func(c *Config) { c.Bind = "https://localhost:10180" },
			expErr: "invalid scheme or host",
		},
		{
			name:   "Valid",
			modify: func(c *Config) { c.Bind = "http://0.0.0.0:9999"; c.LogLevel = "DEBUG" },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewConfig()
			test.modify(c)
			err := c.Validate()
			if test.expErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.expErr)
		})
	}
}

func TestNormalizeBind(t *testing.T) {
	for in, exp := range map[string]string{
		"localhost:1234":        "localhost:1234",
		"http://localhost:1234": "localhost:1234",
		"example.com":           "example.com:10180",
		":8080":                 ":8080",
	} {
		got, err := normalizeBind(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, got, in)
	}
}

func TestConfig_TOML(t *testing.T) {
	src := `
bind = "localhost:0"
log-level = "debug"

[handler]
allowed-origins = ["http://example.com"]
close-timeout = "5s"

[query]
timeout = "250ms"
cast-parallelism = 8
`
	c := NewConfig()
	require.NoError(t, gotoml.Unmarshal([]byte(src), c))
	assert.Equal(t, "localhost:0", c.Bind)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, []string{"http://example.com"}, c.Handler.AllowedOrigins)
	assert.Equal(t, toml.Duration(5*time.Second), c.Handler.CloseTimeout)
	assert.Equal(t, toml.Duration(250*time.Millisecond), c.Query.Timeout)
	assert.Equal(t, 8, c.Query.CastParallelism)
}

func TestConfig_MarshalTOML(t *testing.T) {
	buf, err := gotoml.Marshal(*NewConfig())
	require.NoError(t, err)

	c := &Config{}
	require.NoError(t, gotoml.Unmarshal(buf, c))
	assert.Equal(t, DefaultBind, c.Bind)
	assert.Equal(t, toml.Duration(time.Minute), c.Query.Timeout)
	assert.Equal(t, 4, c.Query.CastParallelism)
}
