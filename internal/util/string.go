// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the termfolio application.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// UNICODE: widths are measured on the NFC form so a decomposed "e" plus
// combining accent counts the same as the precomposed character.

// DisplayWidth returns the number of terminal columns s occupies.
// East Asian wide characters count as 2.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}

// TruncateWidth truncates s to at most maxWidth columns.
// When s is cut, "..." is appended within the limit.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = norm.NFC.String(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces to width columns.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// SplitLines splits s on "\n" and "\r\n". A trailing newline yields a
// final empty element, matching strings.Split.
func SplitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
