// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// Projects renders a numbered list of projects with wrapped summaries,
// tech stack bullets and highlight bullets.
func Projects(v model.Value) []string {
	lines := banner("PROJECTS")

	if !v.IsArray() || v.Len() == 0 {
		return append(lines, "", "No projects")
	}

	for i, p := range v.Items() {
		n := strconv.Itoa(i + 1)
		title := model.Coalesce(p.Get("title"), p.Get("name")).Or("Project " + n)
		lines = append(lines, "", n+". "+title)

		if role := p.Get("role"); role.Truthy() {
			lines = append(lines, "   Role       : "+role.String())
		}

		if summary := model.Coalesce(p.Get("shortDescription"), p.Get("description")); summary.Truthy() {
			lines = append(lines, "   Summary    :")
			lines = append(lines, indentBlock(summary.String())...)
		}

		if detailed := p.Get("detailedDescription"); detailed.Truthy() {
			lines = append(lines, "   Description:")
			lines = append(lines, indentBlock(detailed.String())...)
		}

		if stack := ToStringList(p.Get("techStack")); len(stack) > 0 {
			lines = append(lines, "   Tech Stack:")
			lines = append(lines, bullets(stack)...)
		}

		lines = append(lines, highlights(p.Get("highlights"))...)

		if git := model.Coalesce(p.Get("gitHubLink"), p.Get("gitLink"), p.Get("git")); git.Truthy() {
			lines = append(lines, "   GitHub     : "+git.String())
		}
	}
	return lines
}

// highlights renders the highlights field under its heading. Array items
// are wrapped as given, blank ones included. Anything else is split like a
// list field; a single part gets the "Highlights  :" heading. A falsy field
// renders nothing; a truthy one always gets a heading, even with no parts.
func highlights(v model.Value) []string {
	if !v.Truthy() {
		return nil
	}

	heading := "   Highlights:"
	var items []string
	if v.IsArray() {
		for _, item := range v.Items() {
			items = append(items, item.String())
		}
	} else {
		items = ToStringList(model.String(v.String()))
		if len(items) == 1 {
			heading = "   Highlights  :"
		}
	}

	lines := []string{heading}
	for _, item := range items {
		lines = append(lines, bulletWrap(item, BulletWrapWidth)...)
	}
	return lines
}
