// Package words holds the small text normalisations applied to form input.
package words

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize lower-cases s and upper-cases the first letter of every
// space-separated token. Tokens are split on single spaces so runs of
// spaces are kept as they were typed.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers are stateful; build them per call.
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)

	tokens := strings.Split(lower.String(s), " ")
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(tok)
		tokens[i] = upper.String(tok[:size]) + tok[size:]
	}
	return strings.Join(tokens, " ")
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s has the shape local@domain.tld.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// NormalizeEmail trims and lower-cases an e-mail address.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
