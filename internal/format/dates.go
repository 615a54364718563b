// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// NotAvailable stands in for missing values.
const NotAvailable = "N/A"

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatDate reduces a date value to its four-digit year.
//
// Falsy values give "N/A". Numbers are epoch milliseconds. Strings are
// matched against common ISO-8601 and month/day layouts. Years are read in
// UTC. A value that cannot be read as a date is returned in its string form.
func FormatDate(v model.Value) string {
	if !v.Truthy() {
		return NotAvailable
	}

	switch v.Kind() {
	case model.KindNumber:
		ms := v.Num()
		// time.UnixMilli overflows far outside the JavaScript date range.
		if ms > 8.64e15 || ms < -8.64e15 {
			return v.String()
		}
		return strconv.Itoa(time.UnixMilli(int64(ms)).UTC().Year())
	case model.KindString:
		if t, ok := parseDate(v.Str()); ok {
			return strconv.Itoa(t.UTC().Year())
		}
	}
	return v.String()
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
