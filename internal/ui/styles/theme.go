// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
package styles

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TypingCursor is drawn after the last typed rune while output is animating.
const TypingCursor = "▌"

// CursorBlinkRate is the blink interval of the prompt cursor.
var CursorBlinkRate = 530 * time.Millisecond

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// PROMPT STYLES
	// ==========================================================================

	PromptUser lipgloss.Style
	PromptHost lipgloss.Style
	PromptPath lipgloss.Style
	Input      lipgloss.Style

	// ==========================================================================
	// OUTPUT STYLES
	// ==========================================================================

	Output  lipgloss.Style
	Banner  lipgloss.Style
	Loading lipgloss.Style
	Error   lipgloss.Style
	System  lipgloss.Style
	Cursor  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar   lipgloss.Style
	StatusBadge lipgloss.Style
	StatusFresh lipgloss.Style
	StatusStale lipgloss.Style
	StatusMuted lipgloss.Style
	StatusKey   lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// NewPlainTheme creates a theme that renders no colors or attributes.
// It is used when output is not a terminal and in tests.
func NewPlainTheme() *Theme {
	t := &Theme{IsDark: true, ColorProfile: termenv.Ascii}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	r.SetHasDarkBackground(true)
	plain := r.NewStyle()

	t.PromptUser, t.PromptHost, t.PromptPath, t.Input = plain, plain, plain, plain
	t.Output, t.Banner, t.Loading, t.Error, t.System, t.Cursor = plain, plain, plain, plain, plain, plain
	t.StatusBar, t.StatusBadge, t.StatusFresh, t.StatusStale, t.StatusMuted, t.StatusKey = plain, plain, plain, plain, plain, plain
	return t
}

// IsPlain reports whether the theme renders without color.
func (t *Theme) IsPlain() bool {
	return t.ColorProfile == termenv.Ascii
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Prompt
	t.PromptUser = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.PromptHost = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.PromptPath = lipgloss.NewStyle().Foreground(Purple)
	t.Input = lipgloss.NewStyle().Foreground(TextPrimary)

	// Output
	t.Output = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Banner = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.Loading = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.Error = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.System = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Cursor = lipgloss.NewStyle().Foreground(Green)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusBadge = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.StatusFresh = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusStale = lipgloss.NewStyle().Foreground(Amber)
	t.StatusMuted = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
}

// RenderPrompt renders "<user>@<host>:~$ ".
func (t *Theme) RenderPrompt(user, host string) string {
	return t.PromptUser.Render(user) + "@" + t.PromptHost.Render(host) + ":" + t.PromptPath.Render("~") + "$ "
}
