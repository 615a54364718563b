// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
)

// newPrefetchCommand builds "termfolio prefetch".
func newPrefetchCommand(a *app) *cobra.Command {
	var refresh, list bool

	cmd := &cobra.Command{
		Use:   "prefetch [endpoint...]",
		Short: "Warm the payload cache",
		Long: `Fetches every endpoint (or the ones named) concurrently so the
interactive terminal can answer from the cache, even when the API later
goes away.`,
		ValidArgs: endpointNames(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listCached(cmd.Context(), a)
			}
			if err := a.open(); err != nil {
				return err
			}
			if a.cached == nil {
				fmt.Fprintf(a.stderr, "note: %s source is not cached, fetching anyway\n", a.source.Name())
			}
			if refresh && a.cached != nil {
				if err := a.cached.Invalidate(cmd.Context()); err != nil {
					return err
				}
			}

			var endpoints []commands.Endpoint
			for _, arg := range args {
				ep, _ := commands.ParseEndpoint(arg)
				endpoints = append(endpoints, ep)
			}

			results := backend.Prefetch(cmd.Context(), a.source, endpoints)
			for _, r := range results {
				printPrefetchResult(a, r)
			}

			failed := backend.Failed(results)
			a.logger.Info("PREFETCH_COMPLETE",
				zap.Int("endpoints", len(results)),
				zap.Int("failed", failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d endpoints failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop cached payloads before fetching")
	cmd.Flags().BoolVar(&list, "list", false, "show what is cached instead of fetching")
	return cmd
}

// listCached prints each endpoint with the age of its cached payload.
func listCached(ctx context.Context, a *app) error {
	store := a.openStore()
	if store == nil {
		return errors.New("cache database is unavailable (see the log file)")
	}
	cached, err := store.CachedEndpoints(ctx)
	if err != nil {
		return err
	}
	for _, ep := range commands.Endpoints() {
		fetched, ok := cached[ep.String()]
		if !ok {
			fmt.Fprintf(a.stdout, "  %-10s  not cached\n", ep)
			continue
		}
		state := "fresh"
		if time.Since(fetched) > a.cfg.CacheTTL() {
			state = "expired"
		}
		fmt.Fprintf(a.stdout, "  %-10s  %-7s  %s\n", ep, state, humanize.Time(fetched))
	}
	return nil
}

func printPrefetchResult(a *app, r backend.PrefetchResult) {
	if r.Err != nil {
		fmt.Fprintf(a.stdout, "  FAIL  %-10s  %v\n", r.Endpoint, r.Err)
		return
	}
	origin := "fetched"
	switch {
	case r.Payload.Stale:
		origin = "stale"
	case r.Payload.FromCache:
		origin = "cached"
	}
	fmt.Fprintf(a.stdout, "  ok    %-10s  %-7s  %s\n", r.Endpoint, origin, r.Duration.Round(time.Millisecond))
}

// endpointNames lists the endpoint names for argument validation.
func endpointNames() []string {
	eps := commands.Endpoints()
	names := make([]string, len(eps))
	for i, ep := range eps {
		names[i] = ep.String()
	}
	return names
}
