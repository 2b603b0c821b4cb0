// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "serve", "Help missing serve command")
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFlag string
	}{
		{
			name:     "config flag",
			args:     []string{"--config", "/path/to/config.yaml", "--help"},
			wantFlag: "/path/to/config.yaml",
		},
		{
			name:     "config flag with equals",
			args:     []string{"--config=/etc/keyward.yaml", "--help"},
			wantFlag: "/etc/keyward.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global
			configFile = ""

			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.wantFlag, configFile)
		})
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

func TestServeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     serveConfig
		wantErr bool
	}{
		{
			name: "json format",
			cfg:  serveConfig{logFormat: "json"},
		},
		{
			name: "text format",
			cfg:  serveConfig{logFormat: "text"},
		},
		{
			name:    "empty format",
			cfg:     serveConfig{},
			wantErr: true,
		},
		{
			name:    "unknown format",
			cfg:     serveConfig{logFormat: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunServe_AssemblesCoreAndShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, &serveConfig{
			metricsAddr: "127.0.0.1:0",
			logFormat:   "json",
			logLevel:    "error",
		})
	}()

	// Give assembly a moment, then trigger the context-cancel shutdown path.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down after context cancel")
	}
}

func TestRunServe_RejectsBadLogFormat(t *testing.T) {
	err := runServe(context.Background(), &serveConfig{logFormat: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log-format")
}

func TestServeCommand_Flags(t *testing.T) {
	cmd := NewServeCmd()

	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	require.NoError(t, err)
	assert.Equal(t, defaultMetricsAddr, metricsAddr)

	logFormat, err := cmd.Flags().GetString("log-format")
	require.NoError(t, err)
	assert.Equal(t, defaultLogFormat, logFormat)

	logLevel, err := cmd.Flags().GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, defaultLogLevel, logLevel)
}
