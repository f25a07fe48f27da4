package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Name lowercases, collapses whitespace, and trims the input. Billing and
// roster files spell the same patient inconsistently; identity comparison
// always goes through this form.
func Name(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}
