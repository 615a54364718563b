// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline serves portfolio data without a remote API.
package offline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
)

// Extensions are tried in order when looking up an endpoint file.
var Extensions = []string{".json", ".txt"}

// DirSource serves <dir>/<endpoint>.json (or .txt) files.
// Files are read on every fetch, so edits show up immediately.
type DirSource struct {
	dir string
	now func() time.Time
}

// NewDirSource returns a source reading from dir.
func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory: %s is not a directory", dir)
	}
	return &DirSource{dir: dir, now: time.Now}, nil
}

// Dir returns the directory being served.
func (s *DirSource) Dir() string {
	return s.dir
}

// Name implements backend.Source.
func (s *DirSource) Name() string {
	return "dir"
}

// Fetch implements backend.Source.
func (s *DirSource) Fetch(ctx context.Context, ep commands.Endpoint) (*backend.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, backend.ErrCanceled
	}
	if _, ok := commands.ParseEndpoint(string(ep)); !ok {
		return nil, backend.ErrInvalidEndpoint
	}

	for _, ext := range Extensions {
		path := filepath.Join(s.dir, string(ep)+ext)
		body, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &backend.ClientError{Type: backend.ErrTypeConnection, Message: "failed to read " + path, Cause: err}
		}
		p := backend.NewPayload(ep, body, s.now())
		if ext == ".txt" && !p.IsText {
			p.IsText = true
			p.Text = string(body)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", backend.ErrNotFound, ep, s.dir)
}

// isDataFile reports whether name looks like an endpoint file.
func isDataFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
