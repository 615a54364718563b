// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// About renders the profile object: name, headline, free text, then the
// contact and link maps as bullets. Sections appear only when present.
func About(v model.Value) []string {
	lines := append(banner("ABOUT"), "")

	if !v.IsObject() {
		return append(lines, "No about")
	}

	if name := v.Get("name"); name.Truthy() {
		lines = append(lines, "Name: "+name.String())
	}
	if headline := v.Get("headline"); headline.Truthy() {
		lines = append(lines, "Role: "+headline.String())
	}
	if about := v.Get("about"); about.Truthy() {
		lines = append(lines, "", about.String())
	}

	lines = appendMapSection(lines, "Contact:", v.Get("contactDetails"))
	lines = appendMapSection(lines, "Links:", v.Get("links"))
	return lines
}

// appendMapSection adds a blank line, a heading and one bullet per entry
// of m. Arrays are keyed by index; scalars produce the heading alone.
func appendMapSection(lines []string, heading string, m model.Value) []string {
	if !m.Truthy() {
		return lines
	}

	lines = append(lines, "", heading)
	switch m.Kind() {
	case model.KindObject:
		for _, member := range m.Members() {
			lines = append(lines, "  • "+member.Key+": "+member.Value.String())
		}
	case model.KindArray:
		for i, item := range m.Items() {
			lines = append(lines, "  • "+strconv.Itoa(i)+": "+item.String())
		}
	}
	return lines
}
