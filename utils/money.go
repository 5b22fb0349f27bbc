package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal amount as a string like "12,500.00".
// Uses comma as thousands separator, matching the "#,##0.00" cell format.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		if neg {
			return "-" + intPart + "." + frac
		}
		return intPart + "." + frac
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + fraction
	b.Grow(len(intPart) + len(intPart)/3 + len(frac) + 2)
	if neg {
		b.WriteString("-")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return b.String()
}
