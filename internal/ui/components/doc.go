// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the termfolio TUI.
//
// Components are plain values with a Render method (StatusBar) or pure
// functions returning lines (Intro, HighlightJSON). They hold no tea.Model
// state of their own; the terminal model composes them in its View.
package components
