// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"github.com/jeranaias/termfolio-tui/internal/model"
)

// DefaultSkillCategory groups skills that carry no category.
const DefaultSkillCategory = "Other"

// skillGroup is one category heading and its rendered skills.
type skillGroup struct {
	category string
	values   []string
}

// Skills renders skills grouped by category. Categories appear in the
// order they are first seen and skills keep their input order.
func Skills(v model.Value) []string {
	lines := banner("SKILLS")

	if !v.IsArray() || v.Len() == 0 {
		return append(lines, "", "No skills")
	}

	var groups []*skillGroup
	index := make(map[string]*skillGroup)

	for _, skill := range v.Items() {
		category := namedOr(skill.Get("category"), DefaultSkillCategory)
		proficiency := namedOr(skill.Get("proficiency"), "")
		name := skill.Get("name").Or("Unnamed")

		value := name
		if proficiency != "" {
			value = name + " (" + proficiency + ")"
		}

		g, ok := index[category]
		if !ok {
			g = &skillGroup{category: category}
			index[category] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, value)
	}

	for _, g := range groups {
		lines = append(lines, "", g.category+":")
		for _, value := range g.values {
			lines = append(lines, "  • "+value)
		}
	}
	return lines
}

// namedOr resolves a field that is either a plain value or an object with
// a "name" member. Null resolves to fallback.
func namedOr(v model.Value, fallback string) string {
	if name := v.Get("name"); !name.IsNull() {
		return name.String()
	}
	return v.Or(fallback)
}
