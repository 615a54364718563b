// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
//
// # Sources
//
//   - Client: HTTP GET of <base>/<endpoint> with rate limiting and request IDs
//   - CachedSource: wraps any Source with the SQLite payload cache
//   - offline.DirSource / offline.DemoSource: local files and built-in data
//
// All sources return *Payload. Render turns a payload into display lines.
//
// # Usage
//
//	client := backend.NewClientWithConfig(backend.ClientConfigFrom(cfg, logger))
//	src := backend.NewCachedSource(client, store, cfg.CacheTTL(), logger)
//	p, err := src.Fetch(ctx, commands.EndpointSkills)
//	if err != nil {
//	    return err
//	}
//	for _, line := range backend.Render(p) {
//	    fmt.Println(line)
//	}
package backend
