package stat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

func TestRanged_AlterClampsAtZero(t *testing.T) {
	r := stat.NewRangedAt("Health", 100, 5)
	assert.Equal(t, 0, r.Alter(-20))
	assert.True(t, r.Empty())
}

func TestRanged_AlterClampsAtMax(t *testing.T) {
	r := stat.NewRangedAt("Stamina", 100, 95)
	assert.Equal(t, 100, r.Alter(20))
	assert.False(t, r.Empty())
}

func TestRanged_NewPanicsWithoutMax(t *testing.T) {
	assert.Panics(t, func() { stat.NewRanged("Health", 0) })
}

func TestRanged_String(t *testing.T) {
	assert.Equal(t, "<60 / 100>", stat.NewRangedAt("Health", 100, 60).String())
}

func TestRanged_Property_AlwaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		max := rapid.IntRange(1, 1000).Draw(rt, "max")
		r := stat.NewRangedAt("X", max, rapid.IntRange(-50, 1050).Draw(rt, "start"))
		for _, d := range rapid.SliceOf(rapid.IntRange(-2000, 2000)).Draw(rt, "deltas") {
			v := r.Alter(d)
			assert.GreaterOrEqual(rt, v, 0)
			assert.LessOrEqual(rt, v, max)
			assert.Equal(rt, v == 0, r.Empty())
		}
	})
}

func TestKey(t *testing.T) {
	assert.True(t, stat.Health.Valid())
	assert.True(t, stat.Stamina.Valid())
	assert.False(t, stat.Key("mana").Valid())
	assert.Equal(t, "Health", stat.Health.Title())
}
