// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/offline"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// stubSource answers every fetch with a fixed payload or error.
type stubSource struct {
	payload *backend.Payload
	err     error
	panics  bool
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, ep commands.Endpoint) (*backend.Payload, error) {
	if s.panics {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rec.Code, body.Error.Code)
	return body.Error.Message
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestServer_EndpointServesDemoPayload(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{Version: "test"})

	for _, ep := range commands.Endpoints() {
		t.Run(ep.String(), func(t *testing.T) {
			rec := get(t, srv.Handler(), BasePath+"/"+ep.String(), nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("Last-Modified"))
			assert.True(t, json.Valid(rec.Body.Bytes()), "body should be JSON")
		})
	}
}

func TestServer_EndpointServesTextPayload(t *testing.T) {
	p := backend.NewPayload(commands.EndpointAbout, []byte("plain words\n"), time.Now())
	srv := NewServer(&stubSource{payload: p}, Options{})

	rec := get(t, srv.Handler(), "/api/about", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "plain words\n", rec.Body.String())
}

func TestServer_StalePayloadCarriesWarning(t *testing.T) {
	p := backend.NewPayload(commands.EndpointSkills, []byte(`{"skills":[]}`), time.Now().Add(-time.Hour))
	p.FromCache = true
	p.Stale = true
	srv := NewServer(&stubSource{payload: p}, Options{})

	rec := get(t, srv.Handler(), "/api/skills", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Warning"), "Stale")
	assert.Equal(t, int64(1), srv.Stats().Snapshot().CacheServed)
}

func TestServer_UnknownEndpoint(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	rec := get(t, srv.Handler(), "/api/hobbies", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "hobbies")
	assert.Equal(t, int64(0), srv.Stats().Snapshot().Requests, "unknown endpoints are not counted")
}

func TestServer_SourceErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("projects.json: %w", backend.ErrNotFound), http.StatusNotFound},
		{"invalid endpoint", backend.ErrInvalidEndpoint, http.StatusNotFound},
		{"upstream 404", &backend.ClientError{Type: backend.ErrTypeStatus, Message: "unexpected status: 404", StatusCode: 404}, http.StatusNotFound},
		{"timeout", backend.ErrTimeout, http.StatusGatewayTimeout},
		{"canceled", backend.ErrCanceled, http.StatusServiceUnavailable},
		{"connection", &backend.ClientError{Type: backend.ErrTypeConnection, Message: "connection refused"}, http.StatusBadGateway},
		{"plain error", errors.New("disk on fire"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&stubSource{err: tt.err}, Options{})

			rec := get(t, srv.Handler(), "/api/projects", nil)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.err.Error(), errorMessage(t, rec))

			snap := srv.Stats().Snapshot()
			assert.Equal(t, int64(1), snap.Requests)
			assert.Equal(t, int64(1), snap.Errors)
		})
	}
}

func TestServer_Index(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	rec := get(t, srv.Handler(), "/api", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "demo", resp.Source)
	assert.Equal(t, []string{"about", "education", "skills", "projects", "experience"}, resp.Endpoints)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/about", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// =============================================================================
// HEALTH AND STATS TESTS
// =============================================================================

func TestServer_Health(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{Version: "1.2.3"})

	rec := get(t, srv.Handler(), "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "demo", resp.Source)
	assert.NotEmpty(t, resp.Uptime)
}

func TestServer_Stats(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})
	h := srv.Handler()

	get(t, h, "/api/about", nil)
	get(t, h, "/api/about", nil)
	get(t, h, "/api/skills", nil)

	rec := get(t, h, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(3), snap.Requests)
	assert.Equal(t, int64(0), snap.Errors)
	assert.Equal(t, int64(2), snap.ByEndpoint["about"])
	assert.Equal(t, int64(1), snap.ByEndpoint["skills"])
}

func TestStats_SnapshotIsACopy(t *testing.T) {
	s := NewStats()
	s.Record(commands.EndpointAbout, false, nil)

	snap := s.Snapshot()
	s.Record(commands.EndpointAbout, true, nil)

	assert.Equal(t, int64(1), snap.ByEndpoint["about"])
	assert.Equal(t, int64(2), s.Snapshot().ByEndpoint["about"])
	assert.Equal(t, int64(1), s.Snapshot().CacheServed)
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func TestCORS_AllowedOrigin(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	rec := get(t, srv.Handler(), "/api/about", map[string]string{"Origin": "http://localhost:5173"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	rec := get(t, srv.Handler(), "/api/about", map[string]string{"Origin": "https://evil.example"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardOrigins(t *testing.T) {
	cfg := &CORSConfig{AllowedOrigins: []string{"*.example.com"}}
	assert.Equal(t, "https://www.example.com", cfg.allowOrigin("https://www.example.com"))
	assert.Empty(t, cfg.allowOrigin("https://example.org"))
	assert.Empty(t, cfg.allowOrigin(""))

	open := &CORSConfig{AllowedOrigins: []string{"*"}}
	assert.Equal(t, "*", open.allowOrigin("https://anything.test"))
}

func TestCORS_Preflight(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{
		CORS: &CORSConfig{
			AllowedOrigins: []string{"https://me.dev"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/about", nil)
	req.Header.Set("Origin", "https://me.dev")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://me.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{RatePerMinute: 2})
	h := srv.Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/api/about", nil).Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/about", nil).Code)

	rec := get(t, h, "/api/about", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimiter_PerClientAndSweep(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per client")

	now = now.Add(idleLimiterTTL + time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "refilled after idling")
	assert.Len(t, rl.limiters, 1, "idle bucket for 10.0.0.2 swept")
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{Logger: zap.NewNop()})

	rec := get(t, srv.Handler(), "/health", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = get(t, srv.Handler(), "/health", nil)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36, "generated ids are UUIDs")
}

func TestSecurityHeaders(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	rec := get(t, srv.Handler(), "/health", nil)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := NewServer(&stubSource{panics: true}, Options{})

	rec := get(t, srv.Handler(), "/api/about", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("a"), mark("b"), mark("c"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	get(t, h, "/", nil)

	assert.Equal(t, []string{"a", "b", "c", "handler"}, order)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"direct", "203.0.113.7:4000", nil, "203.0.113.7"},
		{"public peer cannot spoof", "203.0.113.7:4000", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "203.0.113.7"},
		{"proxy forwarded for", "127.0.0.1:4000", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "1.2.3.4"},
		{"proxy real ip", "10.0.0.5:4000", map[string]string{"X-Real-IP": "5.6.7.8"}, "5.6.7.8"},
		{"proxy garbage header", "127.0.0.1:4000", map[string]string{"X-Forwarded-For": "not-an-ip"}, "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(l) }()

	url := "http://" + l.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestServer_ShutdownBeforeServe(t *testing.T) {
	srv := NewServer(offline.NewDemoSource(), Options{})
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, DefaultAddr, srv.Addr())
}
