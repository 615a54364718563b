// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strings"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// Formatter renders a payload as lines.
type Formatter func(model.Value) []string

// formatters maps endpoint names to their layouts.
var formatters = map[string]Formatter{
	"about":      About,
	"education":  Education,
	"skills":     Skills,
	"projects":   Projects,
	"experience": Experience,
}

// For returns the formatter for command, falling back to Generic.
func For(command string) Formatter {
	if f, ok := formatters[command]; ok {
		return f
	}
	return Generic
}

// ByCommand renders v with the layout registered for command.
// Unknown commands use Generic.
func ByCommand(command string, v model.Value) []string {
	return For(command)(v)
}

// banner returns a title line and a dash underline of the same width.
func banner(title string) []string {
	return []string{title, strings.Repeat("-", len(title))}
}
