// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for termfolio.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend URL, timeout and rate limit
//   - CacheConfig: Payload cache and history database
//   - OfflineConfig: Local data directory and demo mode
//   - UIConfig: Prompt, typewriter speed and intro banner
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TERMFOLIO_*, legacy VITE_API_BASE_URL)
//   - .env in the working directory
//   - ~/.termfolio/config.toml
//   - ~/.termfolio/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration once at startup and pass it down:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := backend.NewClientWithConfig(backend.ClientConfigFrom(cfg))
package config
