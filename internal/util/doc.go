// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the termfolio application.
//
// # Key Functions
//
// String Utilities:
//   - DisplayWidth: Terminal column width after NFC normalisation
//   - TruncateWidth: Width-aware truncation with ellipsis
//   - SplitLines: Split on LF and CRLF
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Measure text the way the terminal will draw it
//	w := util.DisplayWidth("日本語") // 6
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
