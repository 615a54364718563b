// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
package terminal

import (
	"time"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
)

// =============================================================================
// FETCH MESSAGES
// =============================================================================

// FetchResultMsg delivers the outcome of an endpoint fetch.
// Seq identifies the request; results for superseded requests are dropped.
type FetchResultMsg struct {
	Seq      int
	Endpoint commands.Endpoint
	Payload  *backend.Payload
	Err      error
	Duration time.Duration
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// TypeTickMsg advances the typewriter by one character.
type TypeTickMsg struct {
	Seq int
}

// StatusTickMsg refreshes relative times in the status bar.
type StatusTickMsg struct{}

// =============================================================================
// DATA MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers persisted command history.
type HistoryLoadedMsg struct {
	Commands []string
	Err      error
}

// DataChangedMsg reports that local data files were edited.
type DataChangedMsg struct {
	Files []string
}
