// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the termfolio TUI.
package components

import (
	"github.com/jeranaias/termfolio-tui/internal/config"
)

// Logo is the block banner shown at the top of the terminal.
var Logo = []string{
	" _                       __       _ _       ",
	"| |_ ___ _ __ _ __ ___  / _| ___ | (_) ___  ",
	"| __/ _ \\ '__| '_ ` _ \\| |_ / _ \\| | |/ _ \\ ",
	"| ||  __/ |  | | | | | |  _| (_) | | | (_) |",
	" \\__\\___|_|  |_| |_| |_|_|  \\___/|_|_|\\___/ ",
}

const (
	// WelcomeLine greets the visitor.
	WelcomeLine = "Welcome to my terminal portfolio."
	// HintLine points at the help command.
	HintLine = "Type `help` to see available commands."
)

// Intro returns the lines the terminal starts with and returns to on clear.
func Intro(ui config.UIConfig) []string {
	lines := []string{""}
	lines = append(lines, Logo...)
	lines = append(lines, "")

	if owner := ownerLine(ui); owner != "" {
		lines = append(lines, owner, "")
	}

	return append(lines, WelcomeLine, HintLine, "")
}

// IsLogoLine reports whether line is part of the logo, for styling.
func IsLogoLine(line string) bool {
	for _, l := range Logo {
		if l == line {
			return true
		}
	}
	return false
}

func ownerLine(ui config.UIConfig) string {
	switch {
	case ui.OwnerName != "" && ui.Tagline != "":
		return ui.OwnerName + " - " + ui.Tagline
	case ui.OwnerName != "":
		return ui.OwnerName
	default:
		return ui.Tagline
	}
}
