// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"context"
	"strings"
	"time"

	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/format"
	"github.com/jeranaias/termfolio-tui/internal/model"
	"github.com/jeranaias/termfolio-tui/internal/util"
)

// =============================================================================
// PAYLOAD
// =============================================================================

// Payload is one response for an endpoint.
type Payload struct {
	Endpoint commands.Endpoint

	// Value is the decoded body when IsText is false.
	Value model.Value

	// Text is the raw body when it is not JSON.
	Text   string
	IsText bool

	// Raw is the body as received.
	Raw []byte

	FetchedAt time.Time

	// FromCache is set when the payload came from the local cache.
	FromCache bool

	// Stale is set when a cached copy was served because the source failed.
	Stale bool
}

// NewPayload decodes body. Bodies that are not JSON become text payloads.
func NewPayload(ep commands.Endpoint, body []byte, fetchedAt time.Time) *Payload {
	p := &Payload{
		Endpoint:  ep,
		Raw:       body,
		FetchedAt: fetchedAt,
	}
	v, err := model.Parse(body)
	if err != nil {
		p.IsText = true
		p.Text = string(body)
		return p
	}
	p.Value = v
	return p
}

// Render returns the lines to display for p.
// Text payloads are split into lines; JSON goes through the endpoint's formatter.
func Render(p *Payload) []string {
	if p == nil {
		return []string{format.NoData}
	}
	if p.IsText {
		return util.SplitLines(strings.TrimRight(p.Text, "\r\n"))
	}
	return format.ByCommand(string(p.Endpoint), p.Value)
}

// =============================================================================
// SOURCE
// =============================================================================

// Source produces payloads for endpoints.
type Source interface {
	// Fetch returns the payload for ep.
	Fetch(ctx context.Context, ep commands.Endpoint) (*Payload, error)

	// Name identifies the source in logs and the status bar.
	Name() string
}
