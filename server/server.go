// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package server contains the `sqlcast server` subcommand. The purpose of
// this package is to define an easily tested Command object which handles
// interpreting configuration and setting up all the objects that the HTTP
// service needs.
package server

import (
	"io"
	"net"
	"time"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
)

// Command represents the state of the sqlcast server command.
type Command struct {
	API     *sqlcast.API
	Handler *sqlcast.Handler

	// Configuration.
	Config *Config

	// Standard input/output
	*sqlcast.CmdIO

	logOutput io.Writer
	logger    logger.Logger

	ln net.Listener

	// Started will be closed once Command.Start is finished.
	Started chan struct{}
	// Done will be closed when Command.Close() is called
	Done chan struct{}

	serveErr chan error
}

// NewCommand returns a new instance of Command.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer) *Command {
	return &Command{
		Config: NewConfig(),

		CmdIO: sqlcast.NewCmdIO(stdin, stdout, stderr),

		Started:  make(chan struct{}),
		Done:     make(chan struct{}),
		serveErr: make(chan error, 1),
	}
}

// Start sets up the server and begins serving HTTP in the background.
func (m *Command) Start() (err error) {
	defer close(m.Started)

	if err := m.SetupServer(); err != nil {
		return errors.Wrap(err, "setting up server")
	}

	go func() {
		m.serveErr <- m.Handler.Serve()
	}()
	m.logger.Printf("sqlcast listening as %s", m.URL())
	return nil
}

// Wait blocks until the HTTP server stops.
func (m *Command) Wait() error {
	return <-m.serveErr
}

// SetupServer validates the configuration and builds the logger, API and
// HTTP handler.
func (m *Command) SetupServer() error {
	if err := m.Config.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}
	if err := m.setupLogger(); err != nil {
		return errors.Wrap(err, "setting up logger")
	}
	m.logger.Infof("%s", sqlcast.VersionInfo())

	bind, err := normalizeBind(m.Config.Bind)
	if err != nil {
		return err
	}

	m.API, err = sqlcast.NewAPI(
		sqlcast.OptAPILogger(m.logger.WithPrefix("api: ")),
		sqlcast.OptAPICastParallelism(m.Config.Query.CastParallelism),
	)
	if err != nil {
		return errors.Wrap(err, "new api")
	}

	m.ln, err = net.Listen("tcp", bind)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", bind)
	}

	m.Handler, err = sqlcast.NewHandler(
		sqlcast.OptHandlerAPI(m.API),
		sqlcast.OptHandlerLogger(m.logger.WithPrefix("http: ")),
		sqlcast.OptHandlerAllowedOrigins(m.Config.Handler.AllowedOrigins),
		sqlcast.OptHandlerListener(m.ln, m.URL()),
		sqlcast.OptHandlerCloseTimeout(time.Duration(m.Config.Handler.CloseTimeout)),
		sqlcast.OptHandlerQueryTimeout(time.Duration(m.Config.Query.Timeout)),
	)
	if err != nil {
		m.ln.Close()
		return errors.Wrap(err, "new handler")
	}
	return nil
}

// setupLogger sets up the logger based on the configuration.
func (m *Command) setupLogger() error {
	if m.Config.LogPath == "" {
		m.logOutput = m.Stderr
	} else {
		f, err := logger.NewFileWriter(m.Config.LogPath)
		if err != nil {
			return errors.Wrap(err, "opening file")
		}
		m.logOutput = f
	}

	if m.Config.Verbose {
		m.logger = logger.NewVerboseLogger(m.logOutput)
	} else {
		m.logger = logger.NewLevelLogger(m.logOutput, logger.ParseLevel(m.Config.LogLevel))
	}
	m.CmdIO.SetLogger(m.logger)
	return nil
}

// ReopenLog reopens the log file in place, after an external rotation.
// It is a no-op when logging to stderr.
func (m *Command) ReopenLog() error {
	if fw, ok := m.logOutput.(*logger.FileWriter); ok {
		return fw.Reopen()
	}
	return nil
}

// URL returns the address clients should use to reach the server.
func (m *Command) URL() string {
	if m.ln == nil {
		return ""
	}
	return "http://" + m.ln.Addr().String()
}

// Close shuts down the server.
func (m *Command) Close() error {
	defer close(m.Done)

	var serveErr, logErr error
	if m.Handler != nil {
		serveErr = m.Handler.Close()
	}
	if closer, ok := m.logOutput.(io.Closer); ok && m.Config.LogPath != "" {
		logErr = closer.Close()
	}
	if serveErr != nil && logErr != nil {
		return errors.Errorf("closing server: '%v', closing logs: '%v'", serveErr, logErr)
	} else if logErr != nil {
		return logErr
	}
	return serveErr
}
