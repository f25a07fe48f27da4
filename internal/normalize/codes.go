package normalize

import "strings"

// Code canonicalizes a service/CPT code for reporting: trimmed and
// uppercased. The rendered document keeps the code exactly as the source
// file spelled it; this form is only used for grouping in analysis output.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
