// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keyward/keyward/internal/config"
	"github.com/keyward/keyward/internal/core"
	"github.com/keyward/keyward/internal/logging"
	"github.com/keyward/keyward/internal/observability"
	"github.com/keyward/keyward/internal/store"
	"github.com/keyward/keyward/pkg/errutil"
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	metricsAddr string
	logFormat   string
	logLevel    string
}

// Validate checks that the configuration is valid.
func (cfg *serveConfig) Validate() error {
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	return nil
}

// Default values for serve command flags.
const (
	defaultMetricsAddr = "127.0.0.1:9100"
	defaultLogFormat   = "json"
	defaultLogLevel    = "info"

	jwtSecretEnv = "KEYWARD_JWT_SECRET"

	shutdownTimeout = 10 * time.Second
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication service",
		Long: `Start the authentication service with in-memory storage,
serving metrics and health probes over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")
	cmd.Flags().StringVar(&cfg.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn or error)")

	return cmd
}

func runServe(ctx context.Context, cfg *serveConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetDefault("keyward", version, cfg.logFormat, cfg.logLevel)

	slog.Info("starting keyward",
		"version", version,
		"commit", commit,
		"config", configFile,
	)

	appCfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var (
		ready atomic.Bool
		app   *core.Core
	)

	var obsServer *observability.Server
	deps := core.Collaborators{
		Users:         store.NewMemoryUsers(),
		TokenPayloads: store.NewMemoryTokenPayloads(),
		JWTSecret:     []byte(os.Getenv(jwtSecretEnv)),
	}
	if cfg.metricsAddr != "" {
		// ready flips only after app is assigned, so checking it first
		// keeps the handle read ordered behind the atomic load.
		obsServer = observability.NewServer(cfg.metricsAddr, func() bool {
			return ready.Load() && app != nil
		})
		deps.Metrics = obsServer.Registry()
	}

	app, err = core.New(appCfg, deps)
	if err != nil {
		return fmt.Errorf("failed to assemble core: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if obsServer != nil {
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		go func() {
			if serveErr, ok := <-obsErrCh; ok && serveErr != nil {
				errutil.LogError(slog.Default(), "observability server failed", serveErr)
				cancel()
			}
		}()
	}

	ready.Store(true)
	slog.Info("keyward ready",
		"lockout_threshold", appCfg.Identity.LockoutThreshold,
		"session_ttl", appCfg.Session.TTL,
		"token_parsing", app.Parser() != nil,
	)

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	ready.Store(false)

	if obsServer != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		if err := obsServer.Stop(stopCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}
