// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// Education renders a numbered list of education entries.
func Education(v model.Value) []string {
	lines := banner("EDUCATION")

	if !v.IsArray() || v.Len() == 0 {
		return append(lines, "", "No education")
	}

	for i, edu := range v.Items() {
		lines = append(lines,
			"",
			strconv.Itoa(i+1)+". "+edu.Get("instituteName").Or(NotAvailable),
			"   Degree : "+edu.Get("degree").Or(NotAvailable),
			"   Field  : "+edu.Get("fieldOfStudy").Or(NotAvailable),
			"   Duration: "+FormatDate(edu.Get("startDate"))+" - "+FormatDate(edu.Get("endDate")),
		)

		if grade := edu.Get("grade"); grade.Truthy() {
			lines = append(lines, "   Grade  : "+grade.String())
		}

		if subjects := ToStringList(edu.Get("subjects")); len(subjects) > 0 {
			lines = append(lines, "   Subjects:")
			lines = append(lines, bullets(subjects)...)
		}
	}
	return lines
}
