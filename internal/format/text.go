// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

const (
	// WrapWidth is the width of summary and description blocks.
	WrapWidth = 80

	// BulletWrapWidth is the width of wrapped highlight bullets.
	BulletWrapWidth = 76

	bulletFirst = "     • "
	bulletRest  = "       "
)

var (
	// listSeparators splits delimiter-joined list strings.
	listSeparators = regexp.MustCompile(`\r?\n|;|•`)

	// paragraphBreak splits text into paragraphs.
	paragraphBreak = regexp.MustCompile(`\r?\n`)
)

// =============================================================================
// LISTS
// =============================================================================

// ToStringList normalizes a list field. Arrays yield the string form of
// each element; strings are split on newlines, ";" and "•". A truthy number
// or bool is split in its string form. Either way the parts are trimmed and
// empty parts dropped. Null, falsy scalars and objects yield nil.
func ToStringList(v model.Value) []string {
	var parts []string
	switch v.Kind() {
	case model.KindArray:
		for _, item := range v.Items() {
			parts = append(parts, item.String())
		}
	case model.KindString:
		parts = listSeparators.Split(v.Str(), -1)
	case model.KindNumber, model.KindBool:
		if !v.Truthy() {
			return nil
		}
		parts = listSeparators.Split(v.String(), -1)
	default:
		return nil
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// bullets renders items as "     • item" lines.
func bullets(items []string) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = bulletFirst + item
	}
	return lines
}

// =============================================================================
// WRAPPING
// =============================================================================

// Wrap breaks text into lines of at most width characters (runes).
//
// Each newline-separated paragraph wraps on its own and an empty paragraph
// yields one empty line. Whitespace runs collapse to a single space. A word
// wider than width is never split; it sits alone on its line.
func Wrap(text string, width int) []string {
	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line := ""
		for _, w := range words {
			if line == "" {
				line = w
				continue
			}
			if utf8.RuneCountInString(line+" "+w) <= width {
				line += " " + w
				continue
			}
			out = append(out, line)
			line = w
		}
		out = append(out, line)
	}
	return out
}

// bulletWrap wraps text and bullets it, aligning continuation lines under
// the first character after the bullet.
func bulletWrap(text string, width int) []string {
	wrapped := Wrap(text, width)
	lines := make([]string, 0, len(wrapped))
	for i, w := range wrapped {
		if i == 0 {
			lines = append(lines, bulletFirst+w)
			continue
		}
		lines = append(lines, bulletRest+w)
	}
	return lines
}

// indentBlock wraps text at WrapWidth and indents it five spaces.
func indentBlock(text string) []string {
	return indent(Wrap(text, WrapWidth), "     ")
}
