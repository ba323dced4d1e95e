package grammar

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrUnknownParticipant is returned when a tag names a key absent from the participants.
	ErrUnknownParticipant = errors.New("grammar: unknown participant")
	// ErrUnbalancedTag is returned for a stray '{' or '}'.
	ErrUnbalancedTag = errors.New("grammar: unbalanced tag braces")
	// ErrEmptyTag is returned for "{}".
	ErrEmptyTag = errors.New("grammar: empty tag")
)

// Participants binds template keys to profiles. Keys match case-insensitively.
type Participants map[string]*Profile

// Formatter evaluates message templates. The zero value is not usable; use NewFormatter.
type Formatter struct {
	logger *zap.Logger
}

// NewFormatter returns a Formatter that logs lenient capitalisation fallbacks
// to logger. A nil logger disables logging.
func NewFormatter(logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{logger: logger}
}

var defaultFormatter = NewFormatter(nil)

// Format evaluates template with a Formatter that does not log.
func Format(template string, participants Participants) (string, error) {
	return defaultFormatter.Format(template, participants)
}

// Format replaces every {tag} in template. A tag is "key", "key.word" or
// "key's":
//
//   - {key} is the participant's styled display name;
//   - {key's} is the possessive name, or "your" for the You set;
//   - {key.word} is a pronoun when word is he/him/his/hers/himself, otherwise
//     a verb conjugated to agree with the participant.
//
// The letters of key as written decide the output case: {User}, {user}, {USER}.
//
// Precondition: no two participant keys differ only in case.
// Postcondition: Returns the rendered text, or an error for an unknown key or
// malformed braces.
func (f *Formatter) Format(template string, participants Participants) (string, error) {
	var (
		out   strings.Builder
		tag   strings.Builder
		inTag bool
	)
	for i, r := range template {
		switch {
		case r == '{':
			if inTag {
				return "", fmt.Errorf("%w: nested '{' at offset %d in %q", ErrUnbalancedTag, i, template)
			}
			inTag = true
			tag.Reset()
		case r == '}':
			if !inTag {
				return "", fmt.Errorf("%w: stray '}' at offset %d in %q", ErrUnbalancedTag, i, template)
			}
			inTag = false
			text, err := f.evaluate(tag.String(), participants)
			if err != nil {
				return "", fmt.Errorf("formatting %q: %w", template, err)
			}
			out.WriteString(text)
		case inTag:
			tag.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	if inTag {
		return "", fmt.Errorf("%w: unterminated tag in %q", ErrUnbalancedTag, template)
	}
	return out.String(), nil
}

func (f *Formatter) evaluate(raw string, participants Participants) (string, error) {
	if raw == "" {
		return "", ErrEmptyTag
	}
	rawKey, word, _ := strings.Cut(raw, ".")
	c, ok := DetectCase(rawKey)
	if !ok {
		f.logger.Warn("cannot infer capitalisation, using title case", zap.String("tag", raw))
	}
	key := strings.ToLower(rawKey)

	if base, found := strings.CutSuffix(key, "'s"); found {
		if p, ok := participants.lookup(base); ok {
			if p.Pronouns == You {
				return ApplyCase(Pronoun(You, PossessiveAdjective), c), nil
			}
			return p.Styled(ApplyCase(p.DisplayName+"'s", c)), nil
		}
	}

	p, ok := participants.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w %q in tag {%s}", ErrUnknownParticipant, key, raw)
	}
	if word == "" {
		return p.Styled(ApplyCase(p.DisplayName, c)), nil
	}

	word = strings.ToLower(word)
	if form, ok := pronounKeys[word]; ok {
		return ApplyCase(Pronoun(p.Pronouns, form), c), nil
	}
	if p.Pronouns.Plural() {
		word = BaseForm(word)
	}
	return ApplyCase(word, c), nil
}

// lookup finds the profile bound to key, ignoring case.
func (ps Participants) lookup(key string) (*Profile, bool) {
	if p, ok := ps[key]; ok {
		return p, true
	}
	for k, p := range ps {
		if strings.EqualFold(k, key) {
			return p, true
		}
	}
	return nil, false
}
