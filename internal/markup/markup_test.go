package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/markup"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, "<red>hit</red>", markup.Wrap("red", "hit"))
	assert.Equal(t, "hit", markup.Wrap("", "hit"))
}

func TestParse_Nested(t *testing.T) {
	spans := markup.Parse("a <red>b <gold>c</gold> d</red> e")
	assert.Equal(t, []markup.Span{
		{Text: "a "},
		{Style: "red", Text: "b "},
		{Style: "gold", Text: "c"},
		{Style: "red", Text: " d"},
		{Text: " e"},
	}, spans)
}

func TestParse_LiteralAngleBrackets(t *testing.T) {
	assert.Equal(t, "<100 / 100>", markup.Strip("<100 / 100>"))
	assert.Equal(t, "x < y", markup.Strip("x < y"))
	assert.Equal(t, "a</red>b", markup.Strip("a</red>b"))
}

func TestRenderANSI(t *testing.T) {
	assert.Equal(t, markup.BrightRed+"ouch"+markup.Reset, markup.RenderANSI("<red>ouch</red>"))
	assert.Equal(t, "plain", markup.RenderANSI("<nosuchstyle>plain</nosuchstyle>"))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal"
	assert.Equal(t, "red normal", markup.StripANSI(input))
}

// Property: rendering then stripping ANSI equals stripping markup.
func TestPropertyRenderThenStripMatchesStrip(t *testing.T) {
	styles := []string{"red", "gold", "gray", "darkgreen", "bogus"}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ()]{0,40}`).Draw(t, "text")
		style := rapid.SampledFrom(styles).Draw(t, "style")
		line := "pre " + markup.Wrap(style, text) + " post"
		assert.Equal(t, markup.Strip(line), markup.StripANSI(markup.RenderANSI(line)))
		assert.Equal(t, "pre "+text+" post", markup.Strip(line))
	})
}
