package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount coerces a free-form monetary string to a non-negative decimal
// rounded to two fractional digits. Currency symbols, thousands separators
// and other noise are stripped before parsing; empty or unparseable input
// yields zero rather than an error. Negative results clamp to zero.
// Coercion is idempotent: Amount(Amount(s).StringFixed(2)) == Amount(s).
func Amount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	d = d.Round(2)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Money renders an amount for document output: "$" plus two fixed decimals.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
