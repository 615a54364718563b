// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for termfolio.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxHistory is the number of history entries kept.
const MaxHistory = 1000

// HistoryEntry is one command typed at the prompt.
type HistoryEntry struct {
	ID        int64
	Command   string
	CreatedAt time.Time
}

// AppendHistory records cmd. Blank commands and repeats of the most
// recent command are not stored. Older entries beyond MaxHistory are pruned.
func (s *Store) AppendHistory(ctx context.Context, cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var last string
	err = tx.QueryRowContext(ctx, "SELECT command FROM history ORDER BY id DESC LIMIT 1").Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to read last command: %w", err)
	case last == cmd:
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO history (command, created_at) VALUES (?, ?)",
		cmd, toMillis(s.now()),
	); err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM history WHERE id <= (SELECT id FROM history ORDER BY id DESC LIMIT 1 OFFSET ?)",
		MaxHistory,
	); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return tx.Commit()
}

// RecentHistory returns up to limit of the newest entries, oldest first.
// A limit of zero or less returns everything.
func (s *Store) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = MaxHistory
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, command, created_at FROM history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Command, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.CreatedAt = fromMillis(ms)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	// Reverse to oldest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// HistoryCommands returns the command strings of RecentHistory.
func (s *Store) HistoryCommands(ctx context.Context, limit int) ([]string, error) {
	entries, err := s.RecentHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	cmds := make([]string, len(entries))
	for i, e := range entries {
		cmds[i] = e.Command
	}
	return cmds, nil
}

// ClearHistory deletes all history entries.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
