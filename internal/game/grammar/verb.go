package grammar

import "strings"

var irregularBase = map[string]string{
	"is":      "are",
	"was":     "were",
	"has":     "have",
	"does":    "do",
	"isn't":   "aren't",
	"wasn't":  "weren't",
	"hasn't":  "haven't",
	"doesn't": "don't",
}

// BaseForm converts a third-person-singular verb ("misses", "stabs", "is") to
// the form agreeing with a plural subject ("miss", "stab", "are"). Words not
// ending in "s" are returned unchanged. The rules cover the template
// vocabulary, not English at large.
func BaseForm(verb string) string {
	if base, ok := irregularBase[verb]; ok {
		return base
	}
	switch {
	case len(verb) > 4 && strings.HasSuffix(verb, "ies"):
		return verb[:len(verb)-3] + "y"
	case hasAnySuffix(verb, "sses", "shes", "ches", "xes", "zzes", "oes"):
		return verb[:len(verb)-2]
	case strings.HasSuffix(verb, "ss"):
		return verb
	case strings.HasSuffix(verb, "s"):
		return verb[:len(verb)-1]
	}
	return verb
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
