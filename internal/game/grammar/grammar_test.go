package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/grammar"
)

func mustFormat(t *testing.T, template string, parts grammar.Participants) string {
	t.Helper()
	out, err := grammar.Format(template, parts)
	require.NoError(t, err)
	return out
}

func TestFormat_PluralVerb(t *testing.T) {
	u := grammar.NewProfile("Skeletons", grammar.They, "")
	assert.Equal(t, "are fast", mustFormat(t, "{u.is} fast", grammar.Participants{"u": u}))
}

func TestFormat_SingularVerbUnchanged(t *testing.T) {
	u := grammar.NewProfile("Rat", grammar.It, "")
	assert.Equal(t, "misses it", mustFormat(t, "{u.misses} it", grammar.Participants{"u": u}))
}

func TestFormat_PossessiveYou(t *testing.T) {
	u := grammar.NewProfile("You", grammar.You, "")
	assert.Equal(t, "your turn", mustFormat(t, "{u's} turn", grammar.Participants{"u": u}))
	assert.Equal(t, "Your turn", mustFormat(t, "{U's} turn", grammar.Participants{"u": u}))
}

func TestFormat_PossessiveName(t *testing.T) {
	c := grammar.NewProfile("claire", grammar.She, "gold")
	assert.Equal(t, "<gold>Claire's</gold> slash", mustFormat(t, "{User's} slash", grammar.Participants{"user": c}))
}

func TestFormat_TitleCasePreserved(t *testing.T) {
	u := grammar.NewProfile("skeleton", grammar.It, "")
	assert.Equal(t, "Skeleton swings", mustFormat(t, "{U} swings", grammar.Participants{"u": u}))
	assert.Equal(t, "SKELETON", mustFormat(t, "{USER}", grammar.Participants{"user": u}))
	assert.Equal(t, "skeleton", mustFormat(t, "{user}", grammar.Participants{"user": u}))
}

func TestFormat_KeysMatchIgnoringCase(t *testing.T) {
	u := grammar.NewProfile("skeleton", grammar.It, "")
	assert.Equal(t, "Skeleton swings", mustFormat(t, "{U} swings", grammar.Participants{"U": u}))
	assert.Equal(t, "skeleton swings", mustFormat(t, "{u} {u.swings}", grammar.Participants{"U": u}))
	assert.Equal(t, "Skeleton's turn", mustFormat(t, "{Guy's} turn", grammar.Participants{"GUY": u}))

	you := grammar.NewProfile("You", grammar.You, "")
	assert.Equal(t, "Your turn", mustFormat(t, "{User's} turn", grammar.Participants{"User": you}))
}

func TestFormat_StyledName(t *testing.T) {
	u := grammar.NewProfile("Skeleton", grammar.It, "gray")
	u.DisplayName = "Skeleton (2)"
	assert.Equal(t, "<gray>Skeleton (2)</gray> joins the battle!",
		mustFormat(t, "{Guy} {guy.joins} the battle!", grammar.Participants{"guy": u}))
}

func TestFormat_Pronouns(t *testing.T) {
	tests := []struct {
		set  grammar.PronounSet
		want string
	}{
		{grammar.She, "She hits her own foot; the blade is hers. She hurt herself. Hit her."},
		{grammar.He, "He hits his own foot; the blade is his. He hurt himself. Hit him."},
		{grammar.They, "They hit their own foot; the blade is theirs. They hurt themself. Hit them."},
		{grammar.It, "It hits its own foot; the blade is its. It hurt itself. Hit it."},
		{grammar.You, "You hit your own foot; the blade is yours. You hurt yourself. Hit you."},
	}
	template := "{U.he} {u.hits} {u.his} own foot; the blade is {u.hers}. {U.he} hurt {u.himself}. Hit {u.him}."
	for _, tc := range tests {
		p := grammar.NewProfile("X", tc.set, "")
		assert.Equal(t, tc.want, mustFormat(t, template, grammar.Participants{"u": p}), tc.set.String())
	}
}

func TestFormat_ErrUnknownParticipant(t *testing.T) {
	_, err := grammar.Format("{Ghost} waves", grammar.Participants{})
	assert.ErrorIs(t, err, grammar.ErrUnknownParticipant)
}

func TestFormat_ErrUnbalanced(t *testing.T) {
	p := grammar.Participants{"u": grammar.NewProfile("A", grammar.He, "")}
	for _, tmpl := range []string{"{u", "u}", "{u{u}}"} {
		_, err := grammar.Format(tmpl, p)
		assert.ErrorIs(t, err, grammar.ErrUnbalancedTag, tmpl)
	}
	_, err := grammar.Format("{}", p)
	assert.ErrorIs(t, err, grammar.ErrEmptyTag)
}

func TestFormat_LenientCaseFallback(t *testing.T) {
	p := grammar.Participants{"user": grammar.NewProfile("bob", grammar.He, "")}
	assert.Equal(t, "Bob", mustFormat(t, "{uSeR}", p))
}

func TestFormat_Property_LiteralTextPassesThrough(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 .,!?']{0,60}`).Draw(rt, "text")
		out, err := grammar.Format(text, nil)
		require.NoError(rt, err)
		assert.Equal(rt, text, out)
	})
}

func TestDetectCase(t *testing.T) {
	tests := []struct {
		raw  string
		want grammar.Case
		ok   bool
	}{
		{"user", grammar.Lower, true},
		{"User", grammar.Title, true},
		{"U", grammar.Title, true},
		{"User's", grammar.Title, true},
		{"USER", grammar.Upper, true},
		{"uSer", grammar.Title, false},
		{"'", grammar.Title, false},
	}
	for _, tc := range tests {
		c, ok := grammar.DetectCase(tc.raw)
		assert.Equal(t, tc.want, c, tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
	}
}

func TestApplyCase_TitlePossessive(t *testing.T) {
	assert.Equal(t, "Claire's", grammar.ApplyCase("claire's", grammar.Title))
	assert.Equal(t, "Silly Skeleton", grammar.ApplyCase("silly skeleton", grammar.Title))
	assert.Equal(t, "Skeleton (2)'s", grammar.ApplyCase("skeleton (2)'s", grammar.Title))
}

func TestBaseForm(t *testing.T) {
	tests := map[string]string{
		"is":      "are",
		"has":     "have",
		"does":    "do",
		"misses":  "miss",
		"stabs":   "stab",
		"slashes": "slash",
		"evades":  "evade",
		"dodges":  "dodge",
		"manages": "manage",
		"swings":  "swing",
		"joins":   "join",
		"appears": "appear",
		"tries":   "try",
		"catches": "catch",
		"goes":    "go",
		"miss":    "miss",
		"bleed":   "bleed",
	}
	for in, want := range tests {
		assert.Equal(t, want, grammar.BaseForm(in), in)
	}
}

func TestPronounSet_Text(t *testing.T) {
	for _, set := range []grammar.PronounSet{grammar.She, grammar.He, grammar.They, grammar.It, grammar.You} {
		b, err := set.MarshalText()
		require.NoError(t, err)
		var got grammar.PronounSet
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, set, got)
	}
	var p grammar.PronounSet
	assert.Error(t, p.UnmarshalText([]byte("xe")))
	assert.True(t, grammar.They.Plural())
	assert.True(t, grammar.You.Plural())
	assert.False(t, grammar.It.Plural())
}

func TestIndefiniteArticle(t *testing.T) {
	tests := map[string]string{
		"sword":                   "a",
		"apple":                   "an",
		"hour":                    "an",
		"honest mistake":          "an",
		"house":                   "a",
		"FBI agent":               "an",
		"USB stick":               "a",
		"unicorn":                 "a",
		"umbrella":                "an",
		"European":                "a",
		"one-eyed rat":            "a",
		"8-ball":                  "an",
		"<blue>Old Mask</blue>":   "an",
		"<green>Dagger</green>":   "a",
		"":                        "a",
	}
	for phrase, want := range tests {
		assert.Equal(t, want, grammar.IndefiniteArticle(phrase), phrase)
	}
	assert.Equal(t, "an hourglass", grammar.WithArticle("hourglass"))
}
