// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves portfolio payloads over HTTP.
//
// Endpoints:
//   - GET /api/{endpoint} - The payload for about, education, skills, projects or experience
//   - GET /api            - List of endpoint names
//   - GET /health         - Health check
//   - GET /stats          - Request statistics
//
// Any backend.Source can be served, so a data directory or the demo
// portfolio can stand in for the real API during front end development.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8080"

	// BasePath prefixes every endpoint route, matching the client default
	// base URL http://localhost:8080/api.
	BasePath = "/api"

	// fetchTimeout bounds a single upstream fetch.
	fetchTimeout = 15 * time.Second
)

// ============================================================================
// STATS
// ============================================================================

// Stats tracks request counts.
type Stats struct {
	StartTime   time.Time        `json:"start_time"`
	Requests    int64            `json:"requests"`
	Errors      int64            `json:"errors"`
	CacheServed int64            `json:"cache_served"`
	ByEndpoint  map[string]int64 `json:"by_endpoint"`

	mu sync.Mutex
}

// NewStats creates empty stats starting now.
func NewStats() *Stats {
	return &Stats{
		StartTime:  time.Now(),
		ByEndpoint: make(map[string]int64),
	}
}

// Record counts one payload request.
func (s *Stats) Record(ep commands.Endpoint, fromCache bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests++
	s.ByEndpoint[ep.String()]++
	if err != nil {
		s.Errors++
	}
	if fromCache {
		s.CacheServed++
	}
}

// Snapshot returns a copy safe to encode.
func (s *Stats) Snapshot() *Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byEndpoint := make(map[string]int64, len(s.ByEndpoint))
	for k, v := range s.ByEndpoint {
		byEndpoint[k] = v
	}
	return &Stats{
		StartTime:   s.StartTime,
		Requests:    s.Requests,
		Errors:      s.Errors,
		CacheServed: s.CacheServed,
		ByEndpoint:  byEndpoint,
	}
}

// Uptime returns how long the stats have been collected.
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// ============================================================================
// SERVER
// ============================================================================

// Options configures a Server.
type Options struct {
	// Addr is the listen address (default DefaultAddr)
	Addr string
	// CORS configures cross-origin access (default DefaultCORSConfig)
	CORS *CORSConfig
	// RatePerMinute bounds requests per client IP; 0 disables limiting
	RatePerMinute int
	// Version is reported by /health
	Version string
	Logger  *zap.Logger
}

// Server serves a backend.Source over HTTP.
type Server struct {
	addr    string
	source  backend.Source
	router  *http.ServeMux
	handler http.Handler
	server  *http.Server
	stats   *Stats
	logger  *zap.Logger
	version string

	mu sync.Mutex
}

// NewServer creates a Server for source.
func NewServer(source backend.Source, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.CORS == nil {
		opts.CORS = DefaultCORSConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		addr:    opts.Addr,
		source:  source,
		router:  http.NewServeMux(),
		stats:   NewStats(),
		logger:  opts.Logger,
		version: opts.Version,
	}
	s.setupRoutes()

	middlewares := []func(http.Handler) http.Handler{
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
		CORSMiddleware(opts.CORS),
	}
	if opts.RatePerMinute > 0 {
		middlewares = append(middlewares, RateLimitMiddleware(NewRateLimiter(opts.RatePerMinute), s.logger))
	}
	s.handler = Chain(middlewares...)(s.router)
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the full handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Stats returns the live request statistics.
func (s *Server) Stats() *Stats {
	return s.stats
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET "+BasePath+"/{endpoint}", s.handleEndpoint)
	s.router.HandleFunc("GET "+BasePath, s.handleIndex)

	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)
}

// ============================================================================
// ENDPOINT HANDLERS
// ============================================================================

// handleEndpoint handles GET /api/{endpoint}.
func (s *Server) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("endpoint")
	ep, ok := commands.ParseEndpoint(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown endpoint: "+name)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	p, err := s.source.Fetch(ctx, ep)
	s.stats.Record(ep, p != nil && p.FromCache, err)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("SERVE_FETCH_FAILED",
			zap.String("endpoint", ep.String()),
			zap.Int("status", status),
			zap.Error(err))
		s.writeError(w, status, err.Error())
		return
	}

	if p.IsText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Last-Modified", p.FetchedAt.UTC().Format(http.TimeFormat))
	if p.Stale {
		w.Header().Set("Warning", `110 - "Response is Stale"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(p.Raw)
}

// statusFor maps a source error to an HTTP status.
func statusFor(err error) int {
	switch {
	case backend.IsNotFound(err), errors.Is(err, backend.ErrInvalidEndpoint),
		backend.StatusCode(err) == http.StatusNotFound:
		return http.StatusNotFound
	case backend.IsTimeout(err):
		return http.StatusGatewayTimeout
	case backend.IsCanceled(err):
		// The client went away; nobody reads this.
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// IndexResponse lists the served endpoints.
type IndexResponse struct {
	Source    string   `json:"source"`
	Endpoints []string `json:"endpoints"`
}

// handleIndex handles GET /api.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	resp := IndexResponse{Source: s.source.Name()}
	for _, ep := range commands.Endpoints() {
		resp.Endpoints = append(resp.Endpoints, ep.String())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// HEALTH AND STATS HANDLERS
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Source  string `json:"source"`
	Uptime  string `json:"uptime"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
		Source:  s.source.Name(),
		Uptime:  s.stats.Uptime().Round(time.Second).String(),
	})
}

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("SERVER_START",
		zap.String("addr", l.Addr().String()),
		zap.String("source", s.source.Name()))

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	snap := s.stats.Snapshot()
	s.logger.Info("SERVER_SHUTDOWN",
		zap.Int64("requests", snap.Requests),
		zap.Int64("errors", snap.Errors))
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"code":    status,
		},
	})
}
