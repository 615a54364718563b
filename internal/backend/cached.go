// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/storage"
)

// PayloadStore persists raw payload bodies. *storage.Store implements it.
type PayloadStore interface {
	GetPayload(ctx context.Context, endpoint string) (*storage.CachedPayload, error)
	PutPayload(ctx context.Context, endpoint string, body []byte, isText bool) error
	InvalidatePayloads(ctx context.Context) error
}

// CachedSource serves payloads from a local cache, refetching from the
// upstream source once they are older than the TTL. When the upstream
// fails, a cached copy of any age is served and marked stale.
type CachedSource struct {
	upstream Source
	store    PayloadStore
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewCachedSource wraps upstream with store. A ttl <= 0 always refetches
// but still falls back to the cache on failure.
func NewCachedSource(upstream Source, store PayloadStore, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Name implements Source.
func (s *CachedSource) Name() string {
	return s.upstream.Name() + "+cache"
}

// Fetch implements Source.
func (s *CachedSource) Fetch(ctx context.Context, ep commands.Endpoint) (*Payload, error) {
	cached, cacheErr := s.store.GetPayload(ctx, string(ep))
	if cacheErr != nil && !errors.Is(cacheErr, storage.ErrNotFound) {
		s.logger.Warn("CACHE_READ_FAILED", zap.String("endpoint", string(ep)), zap.Error(cacheErr))
		cached = nil
	}

	if cached != nil && s.ttl > 0 && cached.Age(s.now()) < s.ttl {
		s.logger.Debug("CACHE_HIT", zap.String("endpoint", string(ep)))
		return s.fromCache(ep, cached, false), nil
	}

	p, err := s.upstream.Fetch(ctx, ep)
	if err != nil {
		if cached != nil && !IsCanceled(err) {
			s.logger.Warn("SERVING_STALE",
				zap.String("endpoint", string(ep)),
				zap.Duration("age", cached.Age(s.now())),
				zap.Error(err),
			)
			return s.fromCache(ep, cached, true), nil
		}
		return nil, err
	}

	if putErr := s.store.PutPayload(ctx, string(ep), p.Raw, p.IsText); putErr != nil {
		s.logger.Warn("CACHE_WRITE_FAILED", zap.String("endpoint", string(ep)), zap.Error(putErr))
	}
	return p, nil
}

// Invalidate drops every cached payload.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.store.InvalidatePayloads(ctx)
}

func (s *CachedSource) fromCache(ep commands.Endpoint, c *storage.CachedPayload, stale bool) *Payload {
	p := NewPayload(ep, c.Body, c.FetchedAt)
	if c.IsText && !p.IsText {
		p.IsText = true
		p.Text = string(c.Body)
	}
	p.FromCache = true
	p.Stale = stale
	return p
}
