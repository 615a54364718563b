// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/config"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the local development API.
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client.
	DefaultUserAgent = "termfolio-tui"

	// maxBodySize caps the bytes read from a response.
	maxBodySize = 4 << 20
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API root; requests go to BaseURL + "/" + endpoint.
	BaseURL string

	// Timeout for each request.
	Timeout time.Duration

	// RatePerSec limits outgoing requests. Zero disables limiting.
	RatePerSec float64

	// Burst is the limiter bucket size.
	Burst int

	// UserAgent is sent with every request.
	UserAgent string

	// Logger receives request logs. Nil discards them.
	Logger *zap.Logger

	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		RatePerSec: 5,
		Burst:      5,
		UserAgent:  DefaultUserAgent,
	}
}

// ClientConfigFrom builds a client configuration from the application config.
func ClientConfigFrom(cfg *config.Config, logger *zap.Logger) *ClientConfig {
	return &ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.Timeout(),
		RatePerSec: cfg.API.RatePerSec,
		Burst:      cfg.API.Burst,
		UserAgent:  cfg.API.UserAgent,
		Logger:     logger,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client fetches payloads from the portfolio API.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(nil)
}

// NewClientWithConfig creates a client with custom configuration.
// Zero fields fall back to their defaults.
func NewClientWithConfig(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()
	c := *cfg
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if c.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RatePerSec), c.Burst)
	}

	return &Client{
		config: &c,
		httpClient: &http.Client{
			Timeout:   c.Timeout,
			Transport: newLoggingTransport(c.Transport, logger, c.UserAgent),
		},
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

// Config returns the effective configuration.
func (c *Client) Config() ClientConfig {
	return *c.config
}

// Name implements Source.
func (c *Client) Name() string {
	return "api"
}

// URL returns the request URL for ep.
func (c *Client) URL(ep commands.Endpoint) string {
	return c.config.BaseURL + "/" + string(ep)
}

// Fetch retrieves the payload for ep.
func (c *Client) Fetch(ctx context.Context, ep commands.Endpoint) (*Payload, error) {
	if _, ok := commands.ParseEndpoint(string(ep)); !ok {
		return nil, ErrInvalidEndpoint
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := contextError(ctx); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &ClientError{Type: ErrTypeRateLimited, Message: "rate limit exceeded", Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(ep), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		if ctxErr := contextError(ctx); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}
	if len(body) > maxBodySize {
		return nil, &ClientError{
			Type:    ErrTypeBodyTooLarge,
			Message: fmt.Sprintf("response body exceeds %d bytes", maxBodySize),
		}
	}

	c.logger.Debug("FETCH_COMPLETE",
		zap.String("endpoint", string(ep)),
		zap.Int("bytes", len(body)),
	)
	return NewPayload(ep, body, c.now()), nil
}

// contextError maps a finished context to the matching sentinel.
func contextError(ctx context.Context) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrCanceled
	default:
		return nil
	}
}

func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := contextError(ctx); ctxErr != nil {
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return &ClientError{
		Type:    ErrTypeConnection,
		Message: fmt.Sprintf("cannot reach %s", hostOf(err)),
		Cause:   err,
	}
}

// hostOf returns the request URL carried by a *url.Error.
func hostOf(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.URL
	}
	return "backend"
}
