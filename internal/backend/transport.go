// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request identifier for server-side tracing.
const RequestIDHeader = "X-Request-ID"

// loggingTransport tags requests with an ID and user agent and logs
// every round trip.
type loggingTransport struct {
	base      http.RoundTripper
	logger    *zap.Logger
	userAgent string
}

func newLoggingTransport(base http.RoundTripper, logger *zap.Logger, userAgent string) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingTransport{base: base, logger: logger, userAgent: userAgent}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.New().String())
	}
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	id := req.Header.Get(RequestIDHeader)

	t.logger.Debug("HTTP_REQUEST",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", id),
	)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Warn("HTTP_ERROR",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.String("request_id", id),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.Error(err),
		)
		return resp, err
	}

	t.logger.Info("HTTP_RESPONSE",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", id),
		zap.Int("status", resp.StatusCode),
		zap.Int64("content_length", resp.ContentLength),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)
	return resp, nil
}
