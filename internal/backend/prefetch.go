// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/termfolio-tui/internal/commands"
)

// PrefetchConcurrency bounds parallel fetches during a prefetch.
const PrefetchConcurrency = 3

// PrefetchResult is the outcome for one endpoint.
type PrefetchResult struct {
	Endpoint commands.Endpoint
	Payload  *Payload
	Err      error
	Duration time.Duration
}

// Prefetch fetches endpoints concurrently and returns one result per
// endpoint in input order. A nil endpoints slice fetches all of them.
// One endpoint failing does not stop the others.
func Prefetch(ctx context.Context, src Source, endpoints []commands.Endpoint) []PrefetchResult {
	if endpoints == nil {
		endpoints = commands.Endpoints()
	}
	results := make([]PrefetchResult, len(endpoints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(PrefetchConcurrency)
	for i, ep := range endpoints {
		g.Go(func() error {
			start := time.Now()
			p, err := src.Fetch(gctx, ep)
			results[i] = PrefetchResult{
				Endpoint: ep,
				Payload:  p,
				Err:      err,
				Duration: time.Since(start),
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed counts the results that carry an error.
func Failed(results []PrefetchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
