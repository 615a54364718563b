// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline serves portfolio data without a remote API.
//
// DirSource reads <endpoint>.json (or .txt) from a directory, DemoSource
// serves an embedded sample portfolio and Watcher reports edits to a data
// directory so the terminal can tell the visitor the data changed.
//
// Both sources implement backend.Source, so the rest of the program does
// not care where a payload came from.
package offline
