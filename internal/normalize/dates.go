package normalize

import (
	"strings"
	"time"
)

// Common date formats found in practice-management billing exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01-02-06",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// Date attempts to parse a date string in multiple common formats.
// Empty or unparseable input yields the fallback (the processing date),
// never an error.
func Date(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// MMDDYY renders a date the way document filenames and billing lines
// expect it: zero-padded month and day, two-digit year.
func MMDDYY(t time.Time) string {
	return t.Format("01-02-06")
}
