package grammar

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is the capitalisation class of a template tag.
type Case int

const (
	Upper Case = iota
	Lower
	Title
)

// DetectCase infers the capitalisation class from the letters of raw, ignoring
// every non-letter. Lower is tested first, then Title, then Upper, so a single
// capital letter ("U") is Title.
//
// Postcondition: ok is false when no class fits (empty or mixed case); the
// returned Case is then Title.
func DetectCase(raw string) (c Case, ok bool) {
	letters := make([]rune, 0, len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return Title, false
	}
	switch {
	case all(letters, unicode.IsLower):
		return Lower, true
	case unicode.IsUpper(letters[0]) && all(letters[1:], unicode.IsLower):
		return Title, true
	case all(letters, unicode.IsUpper):
		return Upper, true
	}
	return Title, false
}

func all(rs []rune, pred func(rune) bool) bool {
	for _, r := range rs {
		if !pred(r) {
			return false
		}
	}
	return true
}

// ApplyCase rewrites s into capitalisation class c. Title case never
// capitalises a possessive "s": "claire's" becomes "Claire's".
func ApplyCase(s string, c Case) string {
	switch c {
	case Upper:
		return cases.Upper(language.English).String(s)
	case Lower:
		return cases.Lower(language.English).String(s)
	default:
		return strings.ReplaceAll(cases.Title(language.English).String(s), "'S", "'s")
	}
}
