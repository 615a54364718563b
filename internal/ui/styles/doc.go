// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
//
// Colors are lipgloss.AdaptiveColor values so they read on both light and
// dark backgrounds. NewTheme detects the terminal's color profile with
// termenv; NewPlainTheme renders nothing but text and is used for pipes
// and tests.
package styles
