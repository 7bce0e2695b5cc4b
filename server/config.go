// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package server

import (
	"net"
	"strings"
	"time"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/toml"
)

const (
	// DefaultBind is the default address the server listens on.
	DefaultBind = "localhost:10180"
)

// Config represents the configuration for the sqlcast server. Field tags
// name the keys of the TOML configuration file.
type Config struct {
	// Bind is the host:port on which the server will listen.
	Bind string `toml:"bind"`

	// LogPath configures where the server will write logs. Empty means
	// stderr.
	LogPath string `toml:"log-path"`

	// Verbose toggles verbose logging which can be useful for debugging.
	Verbose bool `toml:"verbose"`

	// LogLevel is one of panic, error, warn, info or debug. Verbose
	// implies debug.
	LogLevel string `toml:"log-level"`

	// HTTP Handler options
	Handler struct {
		// CORS Allowed Origins
		AllowedOrigins []string `toml:"allowed-origins"`

		// CloseTimeout bounds a graceful shutdown.
		CloseTimeout toml.Duration `toml:"close-timeout"`
	} `toml:"handler"`

	Query struct {
		// Timeout bounds a single /sql or /cast request. Zero disables it.
		Timeout toml.Duration `toml:"timeout"`

		// CastParallelism is the number of casts a batch request runs at
		// once.
		CastParallelism int `toml:"cast-parallelism"`
	} `toml:"query"`
}

// NewConfig returns an instance of Config with default options.
func NewConfig() *Config {
	c := &Config{
		Bind:     DefaultBind,
		LogLevel: "info",
	}
	c.Handler.AllowedOrigins = []string{}
	c.Handler.CloseTimeout = toml.Duration(30 * time.Second)
	c.Query.Timeout = toml.Duration(time.Minute)
	c.Query.CastParallelism = 4
	return c
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if _, err := normalizeBind(c.Bind); err != nil {
		return err
	}
	if c.Query.CastParallelism < 1 {
		return errors.Errorf("query.cast-parallelism must be at least 1, got %d", c.Query.CastParallelism)
	}
	if c.Query.Timeout < 0 {
		return errors.Errorf("query.timeout must not be negative, got %s", c.Query.Timeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "panic", "error", "warn", "info", "debug":
	default:
		return errors.Errorf("invalid log-level '%s'", c.LogLevel)
	}
	return nil
}

// normalizeBind strips an http:// scheme and checks that bind is a
// host:port pair. A bare host gets the default port.
func normalizeBind(bind string) (string, error) {
	host := bind
	if strings.Contains(host, "://") {
		if !strings.HasPrefix(host, "http://") {
			return "", errors.Errorf("invalid scheme or host: '%s'. use the format [http://]<host>:<port>", bind)
		}
		host = strings.TrimPrefix(host, "http://")
	}
	if !strings.Contains(host, ":") {
		_, port, _ := net.SplitHostPort(DefaultBind)
		host = net.JoinHostPort(host, port)
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		return "", errors.Wrapf(err, "invalid bind address '%s'", bind)
	}
	return host, nil
}
