package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats an amount as a string like "$1,234.50".
// Uses comma as thousands separator and always two decimals.
func FormatUSD(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot:]
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + $
	b.Grow(len(s) + len(whole)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteString(frac)

	return b.String()
}

// FormatUSDOrNA formats a present amount, or returns "N/A"
func FormatUSDOrNA(amount *decimal.Decimal) string {
	if amount == nil {
		return "N/A"
	}
	return FormatUSD(*amount)
}
