// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the prompt command system for the terminal.
//
// This package turns a line typed at the prompt into an instruction for the
// caller: print some static text, fetch a backend endpoint, or clear the
// screen. It also provides command registration and tab completion.
//
// # Key Types
//
//   - Result: Parsed line with its Kind, Endpoint and Output
//   - Endpoint: One of the five backend resources
//   - Registry: Ordered command definitions
//   - Completer: Tab completion for command names
//
// # Built-in Commands
//
//   - about, education, skills, projects, experience: Fetch from the backend
//   - help: Show available commands
//   - clear: Reset the screen
//
// # Usage
//
// Parse a line:
//
//	res := commands.Parse(input)
//	switch res.Kind {
//	case commands.KindAPIRequest:
//	    fetch(res.Endpoint)
//	case commands.KindStaticOutput:
//	    print(res.Output)
//	case commands.KindClear:
//	    reset()
//	}
//
// Get completions:
//
//	completer := commands.NewCompleter(commands.NewRegistry())
//	completer.CompleteNames("ex")
//	// Returns ["experience"]
package commands
