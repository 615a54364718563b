// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline serves portfolio data without a remote API.
package offline

import (
	"context"
	"embed"
	"time"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
)

//go:embed demo/*.json
var demoFS embed.FS

// DemoSource serves the built-in sample portfolio.
type DemoSource struct {
	now func() time.Time
}

// NewDemoSource returns the demo source.
func NewDemoSource() *DemoSource {
	return &DemoSource{now: time.Now}
}

// Name implements backend.Source.
func (s *DemoSource) Name() string {
	return "demo"
}

// Fetch implements backend.Source.
func (s *DemoSource) Fetch(ctx context.Context, ep commands.Endpoint) (*backend.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, backend.ErrCanceled
	}
	if _, ok := commands.ParseEndpoint(string(ep)); !ok {
		return nil, backend.ErrInvalidEndpoint
	}
	body, err := demoFS.ReadFile("demo/" + string(ep) + ".json")
	if err != nil {
		return nil, backend.ErrNotFound
	}
	return backend.NewPayload(ep, body, s.now()), nil
}
