// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the prompt command system for the terminal.
package commands

import (
	"strings"
)

// =============================================================================
// ENDPOINTS
// =============================================================================

// Endpoint names a backend resource that a command fetches.
type Endpoint string

const (
	EndpointAbout      Endpoint = "about"
	EndpointEducation  Endpoint = "education"
	EndpointSkills     Endpoint = "skills"
	EndpointProjects   Endpoint = "projects"
	EndpointExperience Endpoint = "experience"
)

// Endpoints returns every endpoint in display order.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointAbout,
		EndpointEducation,
		EndpointSkills,
		EndpointProjects,
		EndpointExperience,
	}
}

// ParseEndpoint returns the endpoint named s, if any.
func ParseEndpoint(s string) (Endpoint, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, ep := range Endpoints() {
		if string(ep) == s {
			return ep, true
		}
	}
	return "", false
}

// String returns the endpoint name.
func (e Endpoint) String() string {
	return string(e)
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// Kind tells the caller what to do with a parsed line.
type Kind int

const (
	// KindStaticOutput carries text to print as is.
	KindStaticOutput Kind = iota

	// KindAPIRequest asks the caller to fetch Endpoint.
	KindAPIRequest

	// KindClear asks the caller to reset the screen.
	KindClear
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStaticOutput:
		return "static"
	case KindAPIRequest:
		return "api"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Result is the outcome of parsing one input line.
type Result struct {
	// Kind selects which of the other fields is meaningful.
	Kind Kind

	// Endpoint is set for KindAPIRequest.
	Endpoint Endpoint

	// Output is set for KindStaticOutput.
	Output string
}

// HelpText is printed by the help command.
const HelpText = "Available commands:\n" +
	"  about\n" +
	"  education\n" +
	"  skills\n" +
	"  projects\n" +
	"  experience\n" +
	"  clear"

// NotFoundPrefix starts the reply to an unknown command.
const NotFoundPrefix = "command not found: "

// =============================================================================
// PARSER
// =============================================================================

// Parse classifies a raw input line. It never fails: every input maps to
// exactly one Result. Matching ignores case and surrounding whitespace, but
// the not-found reply echoes raw unchanged.
func Parse(raw string) Result {
	cmd := strings.ToLower(strings.TrimSpace(raw))

	if ep, ok := ParseEndpoint(cmd); ok {
		return Result{Kind: KindAPIRequest, Endpoint: ep}
	}

	switch cmd {
	case "help":
		return Result{Kind: KindStaticOutput, Output: HelpText}
	case "clear":
		return Result{Kind: KindClear}
	}

	return Result{Kind: KindStaticOutput, Output: NotFoundPrefix + raw}
}
