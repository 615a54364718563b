// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
//
// The Model keeps an output buffer of plain lines. Submitting a command
// echoes it after the prompt and then either types static output, resets
// to the intro (clear) or shows "Loading..." while the endpoint is
// fetched in a tea.Cmd. Fetched payloads are rendered with backend.Render
// and typed out one character per tick.
//
// # Key Bindings
//
//   - Enter: run the command, or finish the current animation
//   - Up/Down: walk command history
//   - Tab: complete a command name
//   - Esc: finish the animation, cancel a fetch or clear the input
//   - Ctrl+Y: copy the last response
//   - Ctrl+L: clear the screen
//   - PgUp/PgDn/Home/End: scroll
//   - Ctrl+C/Ctrl+Q: quit
package terminal
