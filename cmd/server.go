// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/ctl"
	"github.com/featurebasedb/sqlcast/server"
	"github.com/spf13/cobra"
)

// Server is global so that tests can control and verify it.
var Server *server.Command

func newServeCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	Server = server.NewCommand(stdin, stdout, stderr)
	serveCmd := &cobra.Command{
		Use:   "server",
		Short: "Run sqlcast.",
		Long: `sqlcast server runs the sqlcast HTTP service.

It listens for SQL statements on /sql and for standalone
casts on /cast and /cast/batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(Server.Stderr, "%s\n", sqlcast.VersionInfo())

			// Start the server.
			if err := Server.Start(); err != nil {
				return fmt.Errorf("error running server: %v", err)
			}

			// SIGHUP reopens the log file for rotation.
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			go func() {
				for range hup {
					if err := Server.ReopenLog(); err != nil {
						fmt.Fprintf(Server.Stderr, "reopening log: %v\n", err)
					}
				}
			}()

			// First SIGTERM or interrupt causes server to shut down gracefully.
			c := make(chan os.Signal, 2)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(c)
			select {
			case sig := <-c:
				fmt.Fprintf(Server.Stderr, "Received %s; gracefully shutting down...\n", sig.String())

				// Second signal causes a hard shutdown.
				go func() { <-c; os.Exit(1) }()

				if err := Server.Close(); err != nil {
					return err
				}
			case <-Server.Done:
				fmt.Fprintf(Server.Stderr, "Server closed externally\n")
			}
			return Server.Wait()
		},
	}

	ctl.BuildServerFlags(serveCmd, Server.Config)

	return serveCmd
}
