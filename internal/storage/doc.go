// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for termfolio.
//
// A single SQLite database (pure Go driver, WAL mode) holds the visitor's
// command history and the last response body for each backend endpoint.
//
// # Key Types
//
//   - Store: Database handle
//   - HistoryEntry: One command typed at the prompt
//   - CachedPayload: A stored response body with its fetch time
//
// # Usage
//
//	store, err := storage.Open(cfg.Cache.Path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	_ = store.AppendHistory(ctx, "skills")
//	cmds, _ := store.HistoryCommands(ctx, 100)
package storage
