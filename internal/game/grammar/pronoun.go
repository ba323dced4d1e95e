// Package grammar turns message templates such as "{User} {user.misses} {Target}!"
// into English text for an open set of participants: it selects pronouns,
// conjugates verbs for singular and plural subjects, and preserves the
// capitalisation the template author wrote.
package grammar

import (
	"fmt"
	"strings"
)

// PronounSet identifies which pronouns refer to a participant.
type PronounSet int

const (
	She PronounSet = iota
	He
	They
	It
	You
)

var pronounSetNames = [...]string{"she", "he", "they", "it", "you"}

// String returns the lowercase canonical name ("she", "he", ...).
func (p PronounSet) String() string {
	if p < She || p > You {
		return "unknown"
	}
	return pronounSetNames[p]
}

// Plural reports whether verbs agreeing with this set take the plural form.
//
// Postcondition: true iff p is They or You.
func (p PronounSet) Plural() bool {
	return p == They || p == You
}

// ParsePronounSet parses a canonical name, case-insensitively.
func ParsePronounSet(s string) (PronounSet, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for i, name := range pronounSetNames {
		if name == lower {
			return PronounSet(i), nil
		}
	}
	return 0, fmt.Errorf("grammar: unknown pronoun set %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p PronounSet) MarshalText() ([]byte, error) {
	if p < She || p > You {
		return nil, fmt.Errorf("grammar: invalid pronoun set %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PronounSet) UnmarshalText(text []byte) error {
	v, err := ParsePronounSet(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Form is a grammatical pronoun role.
type Form int

const (
	Subject Form = iota
	Object
	PossessiveAdjective
	PossessivePronoun
	Reflexive
)

var pronouns = [...][5]string{
	Subject:             {She: "she", He: "he", They: "they", It: "it", You: "you"},
	Object:              {She: "her", He: "him", They: "them", It: "it", You: "you"},
	PossessiveAdjective: {She: "her", He: "his", They: "their", It: "its", You: "your"},
	PossessivePronoun:   {She: "hers", He: "his", They: "theirs", It: "its", You: "yours"},
	Reflexive:           {She: "herself", He: "himself", They: "themself", It: "itself", You: "yourself"},
}

// pronounKeys maps the masculine canonical spelling used in templates to its
// Form. "his" is always the possessive adjective; "hers" selects the pronoun.
var pronounKeys = map[string]Form{
	"he":      Subject,
	"him":     Object,
	"his":     PossessiveAdjective,
	"hers":    PossessivePronoun,
	"himself": Reflexive,
}

// Pronoun returns the pronoun for set in the given form.
func Pronoun(set PronounSet, form Form) string {
	return pronouns[form][set]
}
