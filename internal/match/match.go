// Package match resolves patient identities against the email roster.
package match

import (
	"strings"

	"github.com/gyeh/billdoc/internal/fields"
	"github.com/gyeh/billdoc/internal/normalize"
	"github.com/gyeh/billdoc/internal/tabular"
)

// Strategy is one way of composing an identity from a roster row for
// comparison against a patient's full name. The full name passed to Match
// is already in normalize.Name form.
type Strategy struct {
	Name  string
	Match func(row tabular.Row, fullName string) bool
}

// Strategies is the ranked identity list. Roster layouts vary; add a
// strategy here to support a new one without touching the matching loop.
var Strategies = []Strategy{
	{
		Name: "single name field",
		Match: func(row tabular.Row, fullName string) bool {
			for _, key := range []string{"Patient", "patient", "Name", "name"} {
				if v, ok := row[key]; ok && v != "" && normalize.Name(v) == fullName {
					return true
				}
			}
			return false
		},
	},
	{
		Name: "first + last",
		Match: func(row tabular.Row, fullName string) bool {
			first, okF := row["First Name"]
			last, okL := row["Last Name"]
			if !okF || !okL {
				return false
			}
			return normalize.Name(first+" "+last) == fullName
		},
	},
}

// Email scans the roster for fullName and returns the matched row's email
// address. The scan is roster-order-stable: the first row satisfying any
// strategy wins, duplicates are never flagged. ok=false means no roster
// entry, a normal reportable outcome rather than an error.
func Email(fullName string, roster []tabular.Row) (string, bool) {
	want := normalize.Name(fullName)
	if want == "" {
		return "", false
	}
	for _, row := range roster {
		for _, s := range Strategies {
			if s.Match(row, want) {
				return strings.TrimSpace(fields.Resolve(row, fields.Email)), true
			}
		}
	}
	return "", false
}
