package service

import (
	"strings"
	"unicode/utf8"

	"github.com/savdohub/savdobot/internal/domain"
)

const minNameLen = 2

// ValidateName trims the input and rejects names shorter than two characters.
func ValidateName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < minNameLen {
		return "", domain.E(domain.KindValidation, "kamida 2 ta belgi kerak")
	}
	return s, nil
}
