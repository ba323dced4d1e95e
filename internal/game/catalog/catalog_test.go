package catalog_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/content"
	"github.com/cory-johannsen/skirmish/internal/game/catalog"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

func load(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(context.Background(), content.FS, catalog.Options{Rand: dice.NewSeededSource(1)})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestLoad_DefaultContent(t *testing.T) {
	c := load(t)

	slash, ok := c.Actions.Action("slash")
	require.True(t, ok)
	assert.Equal(t, 0.20, slash.FailRate)
	stab, _ := c.Actions.Action("stab")
	assert.Equal(t, 0.50, stab.FailRate)
	require.Len(t, stab.Inflicts, 1)
	assert.Equal(t, "bleeding", stab.Inflicts[0].Effect.ID)
	punch, _ := c.Actions.Action("punch")
	require.Len(t, punch.Inflicts, 1)
	assert.Equal(t, "winded", punch.Inflicts[0].Effect.ID)

	dagger, ok := c.Items.Item("dagger")
	require.True(t, ok)
	assert.Equal(t, "<green>Dagger</green> (Slash, Stab)", dagger.ListFormatted())

	hero, err := c.NewPlayer(combat.Player{})
	require.NoError(t, err)
	assert.Equal(t, "You", hero.Lang.DisplayName)
	assert.Equal(t, grammar.You, hero.Lang.Pronouns)
	assert.Equal(t, 15, hero.Speed)
	assert.Equal(t, "<darkred>Flesh and Bone</darkred> (Punch)", hero.Innate.ListFormatted())

	skeleton, err := c.Enemies.Instantiate("skeleton")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, skeleton.Speed, 1)
	assert.LessOrEqual(t, skeleton.Speed, 30)
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{"effects.yaml": {Data: []byte("effects: []")}}
	_, err := catalog.Load(context.Background(), fsys, catalog.Options{Rand: testutil.NewSource(nil, nil)})
	assert.ErrorContains(t, err, "actions.yaml")
}

func TestLoad_BadReference(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, name := range []string{"effects.yaml", "actions.yaml", "enemies.yaml", "player.yaml"} {
		data, err := content.FS.ReadFile(name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: data}
	}
	fsys["items.yaml"] = &fstest.MapFile{Data: []byte("items:\n  - {id: spear, name: Spear, kind: weapon, actions: [thrust]}\n")}
	_, err := catalog.Load(context.Background(), fsys, catalog.Options{Rand: testutil.NewSource(nil, nil)})
	assert.ErrorContains(t, err, "thrust")
}

var verbTag = regexp.MustCompile(`\{[A-Za-z]+\.([a-z]+)\}`)

// contentVerbs is the closed vocabulary of verbs used by the default content,
// with the base form each takes after a plural subject.
var contentVerbs = map[string]string{
	"slashes": "slash",
	"misses":  "miss",
	"evades":  "evade",
	"is":      "are",
	"dodges":  "dodge",
	"manages": "manage",
	"stabs":   "stab",
	"swings":  "swing",
	"brings":  "bring",
	"ducks":   "duck",
	"lunges":  "lunge",
	"snaps":   "snap",
	"bites":   "bite",
	"shakes":  "shake",
	"flails":  "flail",
}

var pronounWords = map[string]bool{"he": true, "him": true, "his": true, "hers": true, "himself": true}

func TestContent_VerbVocabulary(t *testing.T) {
	c := load(t)
	for _, a := range c.Actions.Actions() {
		for _, tmpl := range append(a.Attempt.Templates(), a.Fail.Templates()...) {
			for _, m := range verbTag.FindAllStringSubmatch(tmpl, -1) {
				word := m[1]
				if pronounWords[word] {
					continue
				}
				base, ok := contentVerbs[word]
				if !assert.True(t, ok, "verb %q in %s is not in the tested vocabulary", word, a.ID) {
					continue
				}
				assert.Equal(t, base, grammar.BaseForm(word), "verb %q", word)
			}
		}
	}
	for _, msg := range combat.DefaultJoinMessages {
		for _, m := range verbTag.FindAllStringSubmatch(msg, -1) {
			assert.Equal(t, strings.TrimSuffix(m[1], "s"), grammar.BaseForm(m[1]))
		}
	}
}

func TestContent_EveryTemplateFormatsForEveryPronounSet(t *testing.T) {
	c := load(t)
	sets := []grammar.PronounSet{grammar.She, grammar.He, grammar.They, grammar.It, grammar.You}
	for _, a := range c.Actions.Actions() {
		for _, tmpl := range append(a.Attempt.Templates(), a.Fail.Templates()...) {
			for _, set := range sets {
				out, err := grammar.Format(tmpl, grammar.Participants{
					"user":   grammar.NewProfile("Guy", set, ""),
					"target": grammar.NewProfile("Skeleton", grammar.It, "gray"),
				})
				require.NoError(t, err)
				assert.NotContains(t, out, "{")
			}
		}
	}
}

func TestContent_EveryEnemyKeepsAMoveWithoutStamina(t *testing.T) {
	c := load(t)
	hero, err := c.NewPlayer(combat.Player{})
	require.NoError(t, err)
	for _, tmpl := range c.Enemies.Templates() {
		e, err := c.Enemies.Instantiate(tmpl.ID)
		require.NoError(t, err)
		e.Stamina.Alter(-e.Stamina.Max)
		require.True(t, e.Stamina.Empty())
		assert.NotEmpty(t, e.EligibleActions(hero), "%s has no move once its stamina is spent", tmpl.ID)
	}
}

func TestLoad_EnemyWithoutFallbackRejected(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, name := range []string{"effects.yaml", "actions.yaml", "items.yaml", "player.yaml"} {
		data, err := content.FS.ReadFile(name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: data}
	}
	fsys["enemies.yaml"] = &fstest.MapFile{Data: []byte(`enemies:
  - {id: rat, name: Rat, pronouns: it, max_health: 30, max_stamina: 60, speed: "10", innate: [bite], innate_name: Teeth, weight: 1}
`)}
	_, err := catalog.Load(context.Background(), fsys, catalog.Options{Rand: testutil.NewSource(nil, nil)})
	assert.ErrorIs(t, err, npc.ErrNoFallback)
	assert.ErrorContains(t, err, "rat")
}
