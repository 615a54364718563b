// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for termfolio.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachedPayload is a stored response body.
type CachedPayload struct {
	Endpoint  string
	Body      []byte
	IsText    bool
	FetchedAt time.Time
}

// Age returns how long ago the payload was fetched.
func (p *CachedPayload) Age(now time.Time) time.Duration {
	return now.Sub(p.FetchedAt)
}

// PutPayload stores body as the latest response for endpoint.
func (s *Store) PutPayload(ctx context.Context, endpoint string, body []byte, isText bool) error {
	if body == nil {
		body = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO payload_cache (endpoint, body, is_text, fetched_at) VALUES (?, ?, ?, ?)
ON CONFLICT(endpoint) DO UPDATE SET
    body = excluded.body,
    is_text = excluded.is_text,
    fetched_at = excluded.fetched_at`,
		endpoint, body, boolToInt(isText), toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("failed to cache payload for %s: %w", endpoint, err)
	}
	return nil
}

// GetPayload returns the cached response for endpoint, or ErrNotFound.
func (s *Store) GetPayload(ctx context.Context, endpoint string) (*CachedPayload, error) {
	p := &CachedPayload{Endpoint: endpoint}
	var isText int
	var ms int64

	err := s.db.QueryRowContext(ctx,
		"SELECT body, is_text, fetched_at FROM payload_cache WHERE endpoint = ?", endpoint,
	).Scan(&p.Body, &isText, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payload %s: %w", endpoint, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached payload for %s: %w", endpoint, err)
	}

	p.IsText = isText != 0
	p.FetchedAt = fromMillis(ms)
	return p, nil
}

// InvalidatePayloads removes every cached payload.
func (s *Store) InvalidatePayloads(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM payload_cache"); err != nil {
		return fmt.Errorf("failed to invalidate payload cache: %w", err)
	}
	return nil
}

// CachedEndpoints lists endpoints with a cached payload and their fetch times.
func (s *Store) CachedEndpoints(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT endpoint, fetched_at FROM payload_cache")
	if err != nil {
		return nil, fmt.Errorf("failed to list cached payloads: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var ep string
		var ms int64
		if err := rows.Scan(&ep, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan cached payload: %w", err)
		}
		out[ep] = fromMillis(ms)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
