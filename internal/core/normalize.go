package core

// normalize.go cleans up search keys and sheet values before comparison.
//
// Phone numbers arrive in every format imaginable: "(555) 123-4567",
// "+1 555.123.4567", "5551234567". Only the digits are compared.

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DigitsOnly strips every character that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsEmailKey reports whether a search key should be matched as an email.
func IsEmailKey(s string) bool {
	return strings.Contains(s, "@")
}

// capitalize upper-cases the first rune of s ("name" -> "Name").
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
