// Package phone normalizes Uzbek phone numbers to one canonical form.
//
// The canonical form is +998XXXXXXXXX. Accepted inputs are a 9-digit local
// number, a 12-digit number starting with 998, or the same with punctuation
// (+, spaces, dashes, parentheses). Everything else is rejected.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalid marks input that cannot be normalized to a canonical number.
var ErrInvalid = errors.New("invalid phone number")

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize converts input to the canonical +998XXXXXXXXX form.
func Normalize(input string) (string, error) {
	digits := Digits(input)
	switch {
	case len(digits) == 9:
		return "+998" + digits, nil
	case len(digits) == 12 && strings.HasPrefix(digits, "998"):
		return "+" + digits, nil
	}
	return "", ErrInvalid
}

// Suffix9 returns the last nine digits of a canonical or raw number.
// It returns an empty string when fewer than nine digits are present.
func Suffix9(s string) string {
	digits := Digits(s)
	if len(digits) < 9 {
		return ""
	}
	return digits[len(digits)-9:]
}

// IsSuffixQuery reports whether s is exactly nine digits, the shape used to
// search payments by customer phone suffix.
func IsSuffixQuery(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
