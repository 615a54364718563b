// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// Experience renders a numbered list of positions.
// Duration is printed as given; it is not parsed as a date.
func Experience(v model.Value) []string {
	lines := banner("EXPERIENCE")

	if !v.IsArray() || v.Len() == 0 {
		return append(lines, "", "No experience")
	}

	for i, exp := range v.Items() {
		lines = append(lines, "", strconv.Itoa(i+1)+". "+exp.Get("company").Or("Unknown Company"))

		if role := exp.Get("role"); role.Truthy() {
			lines = append(lines, "   Role           : "+role.String())
		}
		lines = append(lines, "   Duration       : "+exp.Get("duration").Or(NotAvailable))

		if items := ToStringList(exp.Get("responsibilities")); len(items) > 0 {
			lines = append(lines, "   Responsibilities:")
			lines = append(lines, bullets(items)...)
		}
		if items := ToStringList(exp.Get("achievements")); len(items) > 0 {
			lines = append(lines, "   Achievements:")
			lines = append(lines, bullets(items)...)
		}
	}
	return lines
}
