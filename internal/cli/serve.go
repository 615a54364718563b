// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio-tui/internal/server"
)

// shutdownTimeout bounds graceful shutdown of "termfolio serve".
const shutdownTimeout = 5 * time.Second

// newServeCommand builds "termfolio serve".
func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Long: `Serves the active source at /api/<endpoint>, the same shape the
terminal fetches from. Point a front end (or another termfolio with
--base-url) at it to develop against a data directory or the demo
portfolio without the real API.`,
		Example: `  termfolio serve --demo
  termfolio serve --data-dir ./portfolio --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(); err != nil {
				return err
			}
			srv := a.newServer(addr)
			l, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr(), err)
			}
			return serve(cmd.Context(), a, srv, l)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from [server] addr)")
	return cmd
}

// newServer builds the HTTP server for the active source. An empty addr
// uses the configured one.
func (a *app) newServer(addr string) *server.Server {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	cors := server.DefaultCORSConfig()
	cors.AllowedOrigins = a.cfg.Server.Origins()

	return server.NewServer(a.source, server.Options{
		Addr:          addr,
		CORS:          cors,
		RatePerMinute: a.cfg.Server.RatePerMinute,
		Version:       Version,
		Logger:        a.logger,
	})
}

// serve runs srv on l until ctx is done, then shuts it down.
func serve(ctx context.Context, a *app, srv *server.Server, l net.Listener) error {
	fmt.Fprintf(a.stdout, "Serving %s at http://%s%s (Ctrl+C to stop)\n",
		a.source.Name(), l.Addr(), server.BasePath)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
