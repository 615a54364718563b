// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline serves portfolio data without a remote API.
package offline

import (
	"net"
	"net/url"
	"strings"

	"github.com/jeranaias/termfolio-tui/internal/config"
)

// =============================================================================
// MODE
// =============================================================================

// Mode selects where payloads come from.
type Mode int

const (
	// ModeAPI fetches from the configured HTTP API.
	ModeAPI Mode = iota
	// ModeDir reads <endpoint>.json files from a directory.
	ModeDir
	// ModeDemo serves the built-in sample portfolio.
	ModeDemo
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDir:
		return "dir"
	case ModeDemo:
		return "demo"
	default:
		return "api"
	}
}

// ModeFor picks the mode cfg asks for. Demo wins over a data directory.
func ModeFor(cfg *config.Config) Mode {
	switch {
	case cfg.Offline.Demo:
		return ModeDemo
	case cfg.Offline.DataDir != "":
		return ModeDir
	default:
		return ModeAPI
	}
}

// =============================================================================
// STATUS DISPLAY
// =============================================================================

// StatusBadge returns a short badge for the status bar.
// Returns "" for a remote API.
func StatusBadge(mode Mode, baseURL string) string {
	switch mode {
	case ModeDemo:
		return "[DEMO]"
	case ModeDir:
		return "[LOCAL FILES]"
	}
	if u, err := url.Parse(baseURL); err == nil && IsLocalhost(u.Host) {
		return "[LOCAL API]"
	}
	return ""
}

// IsLocalhost checks if a host string refers to localhost.
// Accepts: "localhost", "127.0.0.1", "::1", "[::1]", with or without a port.
func IsLocalhost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.Trim(host, "[]")
	host = strings.ToLower(host)

	if host == "localhost" {
		return true
	}

	// Covers all of 127.0.0.0/8 and every spelling of ::1.
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}

	return false
}
