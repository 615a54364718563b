// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns backend payloads into terminal text.
//
// Every formatter takes a model.Value of any shape and returns an ordered
// slice of lines. Formatters are pure: no I/O, no shared state, and they
// never fail. Unexpected shapes degrade to a "No <domain>" line or to
// placeholder values rather than an error.
//
// # Formatters
//
//   - Generic: Recursive key/value rendering for unknown payloads
//   - About, Education, Skills, Projects, Experience: Fixed domain layouts
//   - ByCommand: Picks the formatter for an endpoint name
//
// # Helpers
//
//   - Wrap: Width-aware word wrapping that keeps paragraph breaks
//   - ToStringList: Normalizes arrays and delimiter-joined strings
//   - FormatDate: Reduces a date-ish value to its year
//
// # Usage
//
//	v, _ := model.Parse(body)
//	for _, line := range format.ByCommand("projects", v) {
//	    fmt.Println(line)
//	}
package format
