// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the prompt command system for the terminal.
package commands

import "strings"

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command describes a prompt command.
type Command struct {
	// Name is what the visitor types (e.g., "skills")
	Name string

	// Description is shown in CLI help and completion
	Description string

	// Kind is what Parse returns for this command
	Kind Kind

	// Endpoint is the resource fetched by API commands
	Endpoint Endpoint
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds command definitions in declaration order.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command. A command with the same name replaces the
// earlier definition in place.
func (r *Registry) Register(cmd *Command) {
	key := strings.ToLower(cmd.Name)
	if existing, ok := r.byName[key]; ok {
		*existing = *cmd
		return
	}
	r.byName[key] = cmd
	r.commands = append(r.commands, cmd)
}

// Get retrieves a command by name, ignoring case.
func (r *Registry) Get(name string) *Command {
	return r.byName[strings.ToLower(strings.TrimSpace(name))]
}

// All returns all commands in declaration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns command names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, cmd := range r.commands {
		names[i] = cmd.Name
	}
	return names
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	descriptions := map[Endpoint]string{
		EndpointAbout:      "Who I am and how to reach me",
		EndpointEducation:  "Degrees, institutes and subjects",
		EndpointSkills:     "Skills grouped by category",
		EndpointProjects:   "Things I have built",
		EndpointExperience: "Where I have worked",
	}
	for _, ep := range Endpoints() {
		r.Register(&Command{
			Name:        string(ep),
			Description: descriptions[ep],
			Kind:        KindAPIRequest,
			Endpoint:    ep,
		})
	}

	r.Register(&Command{
		Name:        "help",
		Description: "List available commands",
		Kind:        KindStaticOutput,
	})
	r.Register(&Command{
		Name:        "clear",
		Description: "Clear the screen",
		Kind:        KindClear,
	})
}
