// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the termfolio TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/jeranaias/termfolio-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents what the terminal is doing.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusTyping
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading..."
	case StatusTyping:
		return "Typing..."
	case StatusError:
		return "Error"
	default:
		return "Ready"
	}
}

// StatusBar is the one-line footer under the prompt.
type StatusBar struct {
	Source string
	Badge  string
	Status Status

	// Last fetch, zero when nothing has been fetched yet.
	LastEndpoint string
	LastFetched  time.Time
	FromCache    bool
	Stale        bool

	// Message is a transient note, e.g. completion candidates.
	Message string

	// Hints is the key help shown on the right.
	Hints string

	Width int
}

// Render draws the bar. now is used for the relative fetch age.
func (s StatusBar) Render(theme *styles.Theme, now time.Time) string {
	var left []string
	if s.Badge != "" {
		left = append(left, theme.StatusBadge.Render(s.Badge))
	}
	left = append(left, theme.StatusMuted.Render("source:")+" "+s.Source)
	left = append(left, s.Status.String())

	if s.LastEndpoint != "" && !s.LastFetched.IsZero() {
		age := humanize.RelTime(s.LastFetched, now, "ago", "from now")
		info := s.LastEndpoint + " " + age
		switch {
		case s.Stale:
			info = theme.StatusStale.Render(info + " (stale)")
		case s.FromCache:
			info = theme.StatusFresh.Render(info + " (cached)")
		default:
			info = theme.StatusFresh.Render(info)
		}
		left = append(left, info)
	}

	if s.Message != "" {
		left = append(left, s.Message)
	}

	right := s.Hints

	l := strings.Join(left, " | ")
	if s.Width <= 0 {
		return theme.StatusBar.Render(l)
	}

	inner := s.Width - 2
	gap := inner - lipgloss.Width(l) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		if lipgloss.Width(l) > inner {
			l = ansi.Truncate(l, inner, "...")
		}
		return theme.StatusBar.Width(s.Width).Render(l)
	}
	return theme.StatusBar.Width(s.Width).Render(l + strings.Repeat(" ", gap) + right)
}
