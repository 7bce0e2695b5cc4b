// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd contains all the sqlcast subcommand definitions (1 per file).

Each command file has a new*Command function which returns a cobra.Command
object wrapping the subcommand, and a package level instance of the command
state so that it can be inspected in tests.

Configuration for every subcommand is read from flags, then environment
variables prefixed with SQLCAST_, then the TOML file named by --config, in
that priority order.
*/
package cmd
