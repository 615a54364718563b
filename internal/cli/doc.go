// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the termfolio command line.
//
// The command tree is built with cobra. The root command loads the
// configuration and logger, opens the payload source for the selected
// mode, and starts either the full-screen terminal or, when stdio is not
// a terminal, a line-oriented prompt.
//
// # Commands
//
//   - termfolio: interactive terminal (or plain prompt)
//   - run <command...>: print one answer and exit
//   - prefetch [endpoint...]: warm the payload cache
//   - history: list or clear the command history
//   - config show|path|init|get|set: configuration management
//   - serve: serve the active source over HTTP
//   - version: build information
//
// # Global Flags
//
//	--config PATH     Config file (default ~/.termfolio/config.toml)
//	--base-url URL    Portfolio API base URL
//	--data-dir DIR    Serve <endpoint>.json files from DIR
//	--demo            Serve the built-in sample portfolio
//	--no-cache        Bypass the payload cache
//	--debug           Debug logging
//	--plain           Line-oriented prompt, no colors
package cli
