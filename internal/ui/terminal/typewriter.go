// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
package terminal

// typewriter reveals lines one rune at a time into the last line of an
// output buffer. After each line completes an empty line is appended,
// which becomes the slot for the next one.
type typewriter struct {
	lines []string
	line  int
	runes []rune
	pos   int
}

func newTypewriter(lines []string) *typewriter {
	tw := &typewriter{lines: lines}
	tw.load()
	return tw
}

func (tw *typewriter) load() {
	tw.pos = 0
	tw.runes = nil
	if tw.line < len(tw.lines) {
		tw.runes = []rune(tw.lines[tw.line])
	}
}

func (tw *typewriter) done() bool {
	return tw.line >= len(tw.lines)
}

// step types one rune into out. Empty lines are emitted without
// consuming a step; typing stops at the next non-empty line.
func (tw *typewriter) step(out []string) []string {
	typed := false
	for !tw.done() {
		if tw.pos < len(tw.runes) {
			if typed {
				return out
			}
			tw.pos++
			typed = true
			out[len(out)-1] = string(tw.runes[:tw.pos])
			continue
		}
		out = append(out, "")
		tw.line++
		tw.load()
	}
	return out
}

// flush writes everything that remains.
func (tw *typewriter) flush(out []string) []string {
	for !tw.done() {
		out[len(out)-1] = tw.lines[tw.line]
		out = append(out, "")
		tw.line++
		tw.load()
	}
	return out
}
