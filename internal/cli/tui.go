// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/offline"
	"github.com/jeranaias/termfolio-tui/internal/ui/styles"
	"github.com/jeranaias/termfolio-tui/internal/ui/terminal"
)

// runTUI runs the full-screen portfolio terminal until the visitor quits.
func runTUI(ctx context.Context, a *app) error {
	opts := terminal.Options{
		Config: a.cfg,
		Source: a.source,
		Theme:  styles.NewTheme(),
		Logger: a.logger,
		Badge:  a.badge(),
	}
	// A nil *storage.Store must not become a non-nil interface.
	if a.store != nil {
		opts.History = a.store
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if a.cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(terminal.New(opts), programOpts...)

	if a.mode == offline.ModeDir && a.cfg.Offline.Watch {
		w, err := a.watchDataDir(program)
		if err != nil {
			a.logger.Warn("WATCH_FAILED", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	final, err := program.Run()
	if m, ok := final.(terminal.Model); ok {
		m.Cancel()
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// watchDataDir forwards data directory edits to the running program.
func (a *app) watchDataDir(program *tea.Program) (*offline.Watcher, error) {
	onChange := func(paths []string) {
		program.Send(terminal.DataChangedMsg{Files: paths})
	}
	w, err := offline.NewWatcher(a.cfg.Offline.DataDir, offline.DefaultDebounce, onChange, a.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
