// Package classify decides, from a billing file's headers alone, what kind
// of document a run produces and whether the file looks like billing data
// at all.
package classify

import (
	"strings"

	"github.com/gyeh/billdoc/internal/model"
)

// DocumentTypeFor inspects the header set once per run. Any header
// containing "paid" (case-insensitive) means payments are recorded, so the
// file yields a superbill; otherwise any header containing "due" yields a
// statement. "paid" beats "due" when both appear. Files with neither
// default to Statement.
func DocumentTypeFor(headers []string) model.DocumentType {
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), "paid") {
			return model.SuperBill
		}
	}
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), "due") {
			return model.Statement
		}
	}
	return model.Statement
}

// Outcome classifies whether a parsed file carries recognizable billing
// columns. It is a typed result, not an error: an Unknown file still
// processes best-effort.
type Outcome string

const (
	OutcomeBilling Outcome = "billing"
	OutcomeEmpty   Outcome = "empty"
	OutcomeUnknown Outcome = "unknown"
)

// billingMarkers are header substrings that indicate billing content.
var billingMarkers = []string{"patient", "name", "amount", "service", "date", "balance", "total"}

// Validate reports whether the header set looks like billing data.
func Validate(headers []string) Outcome {
	if len(headers) == 0 {
		return OutcomeEmpty
	}
	for _, h := range headers {
		lh := strings.ToLower(strings.TrimSpace(h))
		for _, m := range billingMarkers {
			if strings.Contains(lh, m) {
				return OutcomeBilling
			}
		}
	}
	return OutcomeUnknown
}
