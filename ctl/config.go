// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/server"
	toml "github.com/pelletier/go-toml"
)

// ConfigCommand prints the configuration a server would run with after
// flags, environment and config file have been applied.
type ConfigCommand struct {
	*sqlcast.CmdIO
	Config *server.Config
}

// NewConfigCommand returns a new instance of ConfigCommand.
func NewConfigCommand(stdin io.Reader, stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		CmdIO:  sqlcast.NewCmdIO(stdin, stdout, stderr),
		Config: server.NewConfig(),
	}
}

// Run prints out the config.
func (cmd *ConfigCommand) Run(_ context.Context) error {
	if err := cmd.Config.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}
	buf, err := toml.Marshal(*cmd.Config)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Stdout, string(buf))
	return nil
}
