// Package money parses and formats the sum texts used by the payment
// template, like "4,800,000.00 UZS".
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse extracts the numeric value from a template sum text. Thousand
// separators, inner spaces, and a trailing currency code are tolerated.
// Unparseable input yields 0, matching how the statistics treat malformed rows.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.ToUpper(s), "UZS")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders v with thousand separators and two decimals, the way the
// template prints sums: 4800000 -> "4,800,000.00".
func Format(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	raw := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatUZS renders v like Format with the currency suffix attached.
func FormatUZS(v float64) string {
	return fmt.Sprintf("%s UZS", Format(v))
}
