// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/config"
	"github.com/jeranaias/termfolio-tui/internal/logging"
	"github.com/jeranaias/termfolio-tui/internal/offline"
	"github.com/jeranaias/termfolio-tui/internal/storage"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	baseURL    string
	dataDir    string
	demo       bool
	noCache    bool
	debug      bool
	plain      bool
}

// apply copies explicitly set flags over cfg.
func (f *globalFlags) apply(cfg *config.Config) {
	if f.baseURL != "" {
		cfg.API.BaseURL = f.baseURL
	}
	if f.dataDir != "" {
		cfg.Offline.DataDir = f.dataDir
	}
	if f.demo {
		cfg.Offline.Demo = true
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if f.debug {
		cfg.Log.Debug = true
	}
}

// =============================================================================
// APP
// =============================================================================

// app is the state a command runs with. It is built once per invocation
// by the root command's PersistentPreRunE and torn down afterwards.
type app struct {
	flags globalFlags

	cfg    *config.Config
	logger *zap.Logger

	mode   offline.Mode
	source backend.Source

	// cached is set when API responses go through the payload cache.
	cached *backend.CachedSource

	// store holds history and cached payloads. Nil when it could not be opened.
	store *storage.Store

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// interactive reports whether the TUI can run.
	interactive func() bool
	// colorOut reports whether stdout output may carry ANSI colors.
	colorOut func() bool
}

// loadConfig reads the config file named by --config, or the default one,
// then applies flag overrides and validates the result.
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.flags.configPath != "" {
		cfg, err = config.LoadFromPath(a.flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	a.flags.apply(cfg)
	if err := cfg.Migrate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup loads config and logging. Sources are opened lazily by open so
// that commands like "config path" work without touching the database.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Setup(logging.Options{
		File:  cfg.Log.File,
		Debug: cfg.Log.Debug,
	})
	if err != nil {
		// Logging is never fatal.
		fmt.Fprintf(a.stderr, "warning: %v\n", err)
		logger = logging.Nop()
	}
	a.logger = logger
	return nil
}

// open builds the payload source for the configured mode. The history
// store is opened in every mode; the payload cache only wraps the API.
func (a *app) open() error {
	if a.source != nil {
		return nil
	}
	cfg := a.cfg
	a.openStore()

	a.mode = offline.ModeFor(cfg)
	switch a.mode {
	case offline.ModeDemo:
		a.source = offline.NewDemoSource()
	case offline.ModeDir:
		src, err := offline.NewDirSource(cfg.Offline.DataDir)
		if err != nil {
			return err
		}
		a.source = src
	default:
		client := backend.NewClientWithConfig(backend.ClientConfigFrom(cfg, a.logger))
		a.source = client
		if cfg.Cache.Enabled && a.store != nil {
			a.cached = backend.NewCachedSource(client, a.store, cfg.CacheTTL(), a.logger)
			a.source = a.cached
		}
	}

	a.logger.Info("SOURCE_OPEN",
		zap.String("mode", a.mode.String()),
		zap.String("source", a.source.Name()))
	return nil
}

// openStore opens the history and cache database. A database that cannot
// be opened leaves a.store nil; history and caching are then skipped.
func (a *app) openStore() *storage.Store {
	if a.store != nil {
		return a.store
	}
	store, err := storage.Open(a.cfg.Cache.Path)
	if err != nil {
		a.logger.Warn("STORE_OPEN_FAILED", zap.String("path", a.cfg.Cache.Path), zap.Error(err))
		return nil
	}
	a.store = store
	a.logger.Debug("STORE_OPEN", zap.String("path", store.Path()))
	return store
}

// badge is the status bar badge for the open source.
func (a *app) badge() string {
	return offline.StatusBadge(a.mode, a.cfg.API.BaseURL)
}

// appendHistory records cmd, logging failures.
func (a *app) appendHistory(ctx context.Context, cmd string) {
	if a.store == nil {
		return
	}
	if err := a.store.AppendHistory(ctx, cmd); err != nil {
		a.logger.Warn("HISTORY_SAVE_FAILED", zap.Error(err))
	}
}

// close releases the store and flushes the logger.
func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("STORE_CLOSE_FAILED", zap.Error(err))
		}
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
