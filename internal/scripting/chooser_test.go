package scripting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/scripting"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

var _ combat.Preference = (*scripting.Chooser)(nil)

const finisher = `
function choose(actions, target, self)
  if target.health <= 20 then
    for _, id in ipairs(actions) do
      if id == "stab" then return id end
    end
  end
  if self.stamina < self.max_stamina / 2 then
    return "punch"
  end
  return nil
end
`

func newChooser(t *testing.T, source string, limit int) *scripting.Chooser {
	t.Helper()
	c, err := scripting.NewChooser(context.Background(), "test", source, testutil.NewSource(nil, nil), limit, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestChooser_Choose(t *testing.T) {
	c := newChooser(t, finisher, 0)
	self := combat.Snapshot{Name: "Skeleton", Health: 50, MaxHealth: 50, Stamina: 50, MaxStamina: 50}
	weak := combat.Snapshot{Name: "You", Health: 10, MaxHealth: 100}
	strong := combat.Snapshot{Name: "You", Health: 90, MaxHealth: 100}

	got, err := c.Choose(context.Background(), []string{"slash", "stab"}, self, weak)
	require.NoError(t, err)
	assert.Equal(t, "stab", got)

	got, err = c.Choose(context.Background(), []string{"slash", "stab"}, self, strong)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	self.Stamina = 10
	got, err = c.Choose(context.Background(), []string{"slash"}, self, strong)
	require.NoError(t, err)
	assert.Equal(t, "punch", got)
}

func TestNewChooser_RequiresHook(t *testing.T) {
	_, err := scripting.NewChooser(context.Background(), "empty", `x = 1`, testutil.NewSource(nil, nil), 0, nil)
	assert.ErrorContains(t, err, "choose")

	_, err = scripting.NewChooser(context.Background(), "broken", `function choose(`, testutil.NewSource(nil, nil), 0, nil)
	assert.Error(t, err)
}

func TestChooser_WrongReturnType(t *testing.T) {
	c := newChooser(t, `function choose() return 7 end`, 0)
	_, err := c.Choose(context.Background(), nil, combat.Snapshot{}, combat.Snapshot{})
	assert.Error(t, err)
}

func TestChooser_DiceModule(t *testing.T) {
	src := testutil.NewSource([]int{5}, []float64{0.1})
	c, err := scripting.NewChooser(context.Background(), "dice", `
function choose(actions)
  if dice.roll("1d6") == 6 and dice.chance(0.5) then return actions[1] end
  return nil
end`, src, 0, nil)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Choose(context.Background(), []string{"bash"}, combat.Snapshot{}, combat.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, "bash", got)
}

func TestChooser_InstructionLimitExceeded(t *testing.T) {
	c := newChooser(t, `function choose() while true do end end`, 50)
	_, err := c.Choose(context.Background(), nil, combat.Snapshot{}, combat.Snapshot{})
	assert.Error(t, err, "expected instruction limit error")
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(10, 500).Draw(rt, "limit")
		c, err := scripting.NewChooser(context.Background(), "loop", `function choose() while true do end end`, dice.NewSeededSource(1), limit, nil)
		if err != nil {
			rt.Fatalf("NewChooser: %v", err)
		}
		defer c.Close()
		if _, err := c.Choose(context.Background(), nil, combat.Snapshot{}, combat.Snapshot{}); err == nil {
			rt.Fatalf("expected error with limit %d", limit)
		}
	})
}
