package grammar

import "github.com/cory-johannsen/skirmish/internal/markup"

// Profile is the narratable identity of a participant.
type Profile struct {
	// TrueName is the stable name used to detect duplicates.
	TrueName string
	// DisplayName is what narration prints; it may carry a "(2)" suffix.
	DisplayName string
	Pronouns    PronounSet
	// Style is the markup tag wrapped around the name, e.g. "gray". Empty means unstyled.
	Style string
}

// NewProfile creates a Profile whose display name starts as name.
func NewProfile(name string, pronouns PronounSet, style string) *Profile {
	return &Profile{TrueName: name, DisplayName: name, Pronouns: pronouns, Style: style}
}

// Styled wraps text in the profile's name style.
func (p *Profile) Styled(text string) string {
	return markup.Wrap(p.Style, text)
}

// Pretty returns the styled display name.
func (p *Profile) Pretty() string {
	return p.Styled(p.DisplayName)
}

func (p *Profile) String() string { return p.DisplayName }
