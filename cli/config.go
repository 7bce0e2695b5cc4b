// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import "time"

// Config represents the configuration for the command.
type Config struct {
	Host string `json:"host"`
	Port string `json:"port"`

	// Local evaluates statements in process instead of against a server.
	Local bool `json:"local"`

	// File, when set, is executed instead of reading from the prompt.
	File string `json:"file"`

	// Timeout bounds each request to the server, including retries.
	Timeout time.Duration `json:"timeout"`

	HistoryPath string `json:"history-path"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Host:    defaultHost,
		Port:    defaultPort,
		Timeout: 30 * time.Second,
	}
}
