// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the prompt command system for the terminal.
package commands

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completion is a single completion suggestion.
type Completion struct {
	// Value is the command name to insert
	Value string

	// Description explains the command
	Description string

	// Fuzzy is true when the match is not a plain prefix
	Fuzzy bool
}

// Completer handles tab completion for command names.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns suggestions for prefix. Prefix matches come first in
// declaration order, followed by fuzzy matches ranked by score.
// An empty prefix returns every command.
func (c *Completer) Complete(prefix string) []Completion {
	if c == nil || c.registry == nil {
		return nil
	}

	cmds := c.registry.All()
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var out []Completion
	taken := make(map[string]bool, len(cmds))
	for _, cmd := range cmds {
		if strings.HasPrefix(cmd.Name, prefix) {
			out = append(out, Completion{Value: cmd.Name, Description: cmd.Description})
			taken[cmd.Name] = true
		}
	}
	if prefix == "" {
		return out
	}

	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}
	// fuzzy.Find returns matches sorted by score.
	for _, m := range fuzzy.Find(prefix, names) {
		cmd := cmds[m.Index]
		if taken[cmd.Name] {
			continue
		}
		taken[cmd.Name] = true
		out = append(out, Completion{Value: cmd.Name, Description: cmd.Description, Fuzzy: true})
	}
	return out
}

// CompleteNames is Complete reduced to the suggested names.
func (c *Completer) CompleteNames(prefix string) []string {
	completions := c.Complete(prefix)
	names := make([]string, len(completions))
	for i, comp := range completions {
		names[i] = comp.Value
	}
	return names
}

// Single returns the one completion for prefix when exactly one prefix
// match exists. Fuzzy matches never auto-complete.
func (c *Completer) Single(prefix string) (string, bool) {
	var match string
	count := 0
	for _, comp := range c.Complete(prefix) {
		if comp.Fuzzy {
			break
		}
		match = comp.Value
		count++
	}
	if count != 1 {
		return "", false
	}
	return match, true
}
