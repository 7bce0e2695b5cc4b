// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"github.com/featurebasedb/sqlcast/server"
	"github.com/spf13/cobra"
)

// BuildServerFlags attaches a set of flags to the command for a server instance.
func BuildServerFlags(cmd *cobra.Command, conf *server.Config) {
	flags := cmd.Flags()
	flags.StringVarP(&conf.Bind, "bind", "b", conf.Bind, "Default URI on which sqlcast should listen.")
	flags.StringVar(&conf.LogPath, "log-path", conf.LogPath, "Log path")
	flags.BoolVar(&conf.Verbose, "verbose", conf.Verbose, "Enable verbose logging")
	flags.StringVar(&conf.LogLevel, "log-level", conf.LogLevel, "Log level: panic, error, warn, info or debug.")

	// Handler
	flags.StringSliceVar(&conf.Handler.AllowedOrigins, "handler.allowed-origins", []string{}, "Comma separated list of allowed origin URIs (for CORS).")
	flags.Var(&conf.Handler.CloseTimeout, "handler.close-timeout", "Time allowed for in-flight requests to finish on shutdown.")

	// Query
	flags.Var(&conf.Query.Timeout, "query.timeout", "Maximum time a single request may run. Zero to disable.")
	flags.IntVar(&conf.Query.CastParallelism, "query.cast-parallelism", conf.Query.CastParallelism, "Number of casts a batch request evaluates at once.")
}
