// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"github.com/jeranaias/termfolio-tui/internal/model"
)

// NoData is returned by Generic for a null payload.
const NoData = "No data"

// Generic renders any value as indented key/value lines.
//
// Array elements become "- " bullets. An element that is an object, array
// or null gets a bullet line of its own followed by its lines indented two
// spaces. Object members print as "key: value"; array members list their
// elements under "key:" (object-like elements under a bare "  -" with four
// spaces of indent) and object members nest under "key:" with two spaces.
func Generic(v model.Value) []string {
	switch v.Kind() {
	case model.KindNull:
		return []string{NoData}
	case model.KindArray:
		return genericArray(v)
	case model.KindObject:
		return genericObject(v)
	default:
		return []string{v.String()}
	}
}

func genericArray(v model.Value) []string {
	var lines []string
	for _, item := range v.Items() {
		if item.IsObjectLike() {
			lines = append(lines, "- ")
			lines = append(lines, indent(Generic(item), "  ")...)
			continue
		}
		lines = append(lines, "- "+item.String())
	}
	return lines
}

func genericObject(v model.Value) []string {
	var lines []string
	for _, m := range v.Members() {
		switch m.Value.Kind() {
		case model.KindArray:
			lines = append(lines, m.Key+":")
			for _, item := range m.Value.Items() {
				if item.IsObjectLike() {
					lines = append(lines, "  -")
					lines = append(lines, indent(Generic(item), "    ")...)
					continue
				}
				lines = append(lines, "  - "+item.String())
			}
		case model.KindObject:
			lines = append(lines, m.Key+":")
			lines = append(lines, indent(Generic(m.Value), "  ")...)
		default:
			lines = append(lines, m.Key+": "+m.Value.String())
		}
	}
	return lines
}

// indent prefixes every line with prefix, in place.
func indent(lines []string, prefix string) []string {
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return lines
}
