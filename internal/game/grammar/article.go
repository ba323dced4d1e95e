package grammar

import (
	"strings"
	"unicode"

	"github.com/cory-johannsen/skirmish/internal/markup"
)

var (
	silentH = []string{"hour", "honest", "honor", "honour", "heir"}
	// vowel letters pronounced with a leading consonant sound
	consonantSound = []string{"uni", "use", "usu", "ura", "uri", "uti", "eu", "ewe", "one", "once", "ubiq"}
	// letter names beginning with a vowel sound: "an FBI agent", "an X-ray"
	vowelLetters = "AEFHILMNORSX"
)

// IndefiniteArticle returns "a" or "an" for phrase, judged by its first word.
// Markup tags are ignored.
func IndefiniteArticle(phrase string) string {
	word := firstWord(markup.Strip(phrase))
	if word == "" {
		return "a"
	}
	lower := strings.ToLower(word)
	for _, h := range silentH {
		if strings.HasPrefix(lower, h) {
			return "an"
		}
	}
	if isAcronym(word) {
		if strings.ContainsRune(vowelLetters, rune(word[0])) {
			return "an"
		}
		return "a"
	}
	if unicode.IsDigit(rune(word[0])) {
		if word[0] == '8' || word == "11" || word == "18" {
			return "an"
		}
		return "a"
	}
	for _, p := range consonantSound {
		if strings.HasPrefix(lower, p) {
			return "a"
		}
	}
	if strings.ContainsRune("aeiou", rune(lower[0])) {
		return "an"
	}
	return "a"
}

// WithArticle prefixes phrase with its indefinite article: "an Hourglass".
func WithArticle(phrase string) string {
	return IndefiniteArticle(phrase) + " " + phrase
}

func firstWord(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

func isAcronym(word string) bool {
	for _, r := range word {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return word != ""
}
