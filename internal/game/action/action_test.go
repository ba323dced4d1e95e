package action_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
	"github.com/cory-johannsen/skirmish/internal/host"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

type fakeBearer struct {
	profile *grammar.Profile
	stats   map[stat.Key]*stat.Ranged
	effects map[string]int
}

func newBearer(name string, p grammar.PronounSet, health, stamina int) *fakeBearer {
	return &fakeBearer{
		profile: grammar.NewProfile(name, p, ""),
		stats: map[stat.Key]*stat.Ranged{
			stat.Health:  stat.NewRangedAt("Health", 100, health),
			stat.Stamina: stat.NewRangedAt("Stamina", 100, stamina),
		},
		effects: map[string]int{},
	}
}

func (b *fakeBearer) Stat(k stat.Key) *stat.Ranged { return b.stats[k] }
func (b *fakeBearer) Profile() *grammar.Profile { return b.profile }
func (b *fakeBearer) Afflict(e *action.Effect, turns int) { b.effects[e.ID] = turns }

func newEnv(src *testutil.Source) (*action.Env, *host.Recorder) {
	rec := &host.Recorder{}
	return &action.Env{
		Sink:    rec,
		Rand:    src,
		Grammar: grammar.NewFormatter(zap.NewNop()),
		Logger:  zap.NewNop(),
	}, rec
}

func slash(src *testutil.Source, failRate float64) *action.Action {
	return &action.Action{
		ID:       "slash",
		Name:     "Slash",
		User:     []action.Imposition{action.Stamina(4)},
		Target:   []action.Imposition{action.Health(14)},
		FailRate: failRate,
		Attempt:  message.MustPool(src, "{User} {user.slashes} at {Target}!"),
		Fail:     message.MustPool(src, "{User} {user.misses}."),
	}
}

func TestExecute_Success(t *testing.T) {
	src := testutil.NewSource(nil, []float64{0.99})
	env, rec := newEnv(src)
	you := newBearer("You", grammar.You, 100, 10)
	skel := newBearer("Skeleton", grammar.It, 100, 100)

	out, err := slash(src, 0.2).Execute(context.Background(), env, you, skel)
	require.NoError(t, err)
	assert.Equal(t, action.Succeeded, out)
	assert.Equal(t, 6, you.Stat(stat.Stamina).Value())
	assert.Equal(t, 86, skel.Stat(stat.Health).Value())
	assert.Equal(t, []string{
		"You slash at Skeleton!",
		"    [You] -4 (6) Stamina",
		"    [Skeleton] -14 (86) Health",
	}, rec.Plain())
}

func TestExecute_FailureSkipsTargetButChargesUser(t *testing.T) {
	src := testutil.NewSource(nil, []float64{0.0})
	env, rec := newEnv(src)
	you := newBearer("You", grammar.You, 100, 10)
	skel := newBearer("Skeleton", grammar.It, 100, 100)

	out, err := slash(src, 1.0).Execute(context.Background(), env, you, skel)
	require.NoError(t, err)
	assert.Equal(t, action.Failed, out)
	assert.Equal(t, 6, you.Stat(stat.Stamina).Value())
	assert.Equal(t, 100, skel.Stat(stat.Health).Value())
	lines := rec.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "<red>You miss.</red>", lines[2])
}

func TestExecute_ZeroFailRateNeverFails(t *testing.T) {
	src := testutil.NewSource(nil, []float64{0.0})
	env, _ := newEnv(src)
	you := newBearer("You", grammar.You, 100, 100)
	skel := newBearer("Skeleton", grammar.It, 100, 100)

	out, err := slash(src, 0).Execute(context.Background(), env, you, skel)
	require.NoError(t, err)
	assert.Equal(t, action.Succeeded, out)
}

func TestExecute_InflictsEffectOnSuccess(t *testing.T) {
	src := testutil.NewSource([]int{2}, []float64{0.99, 0.1})
	env, rec := newEnv(src)
	bleeding := &action.Effect{ID: "bleeding", Name: "<red>Bleeding</red>", MinTurns: 1, MaxTurns: 5}
	a := slash(src, 0.2)
	a.Inflicts = []action.Infliction{{Effect: bleeding, Chance: 0.3}}
	you := newBearer("You", grammar.You, 100, 100)
	skel := newBearer("Skeleton", grammar.It, 100, 100)

	_, err := a.Execute(context.Background(), env, you, skel)
	require.NoError(t, err)
	assert.Equal(t, 3, skel.effects["bleeding"])
	plain := rec.Plain()
	assert.Equal(t, "Skeleton is now Bleeding!", plain[len(plain)-1])
}

func TestExecute_KillingBlowInflictsNothing(t *testing.T) {
	src := testutil.NewSource([]int{2}, []float64{0.99, 0.1})
	env, rec := newEnv(src)
	bleeding := &action.Effect{ID: "bleeding", Name: "<red>Bleeding</red>", MinTurns: 1, MaxTurns: 5}
	a := slash(src, 0.2)
	a.Inflicts = []action.Infliction{{Effect: bleeding, Chance: 0.3}}
	you := newBearer("You", grammar.You, 100, 100)
	skel := newBearer("Skeleton", grammar.It, 14, 100)

	_, err := a.Execute(context.Background(), env, you, skel)
	require.NoError(t, err)
	assert.True(t, skel.Stat(stat.Health).Empty())
	assert.Empty(t, skel.effects)
	assert.Equal(t, "    [Skeleton] -14 (0) Health", rec.Plain()[len(rec.Plain())-1])
	assert.Len(t, rec.Lines(), 3)
}

func TestAction_Free(t *testing.T) {
	src := testutil.NewSource(nil, nil)
	assert.False(t, slash(src, 0).Free())
	flail := &action.Action{ID: "flail", Target: []action.Imposition{action.Health(2)}}
	assert.True(t, flail.Free())
}

func TestCheck(t *testing.T) {
	src := testutil.NewSource(nil, nil)
	a := slash(src, 0)
	target := newBearer("Skeleton", grammar.It, 100, 100)

	assert.True(t, a.Check(newBearer("You", grammar.You, 100, 4), target))
	assert.False(t, a.Check(newBearer("You", grammar.You, 100, 3), target))
	assert.False(t, a.Check(newBearer("You", grammar.You, 100, 100), newBearer("Rat", grammar.It, 13, 0)))
	assert.True(t, (&action.Action{}).Check(target, target))
}

func TestEligible(t *testing.T) {
	src := testutil.NewSource(nil, nil)
	cheap := slash(src, 0)
	dear := slash(src, 0)
	dear.User = []action.Imposition{action.Stamina(50)}
	user := newBearer("You", grammar.You, 100, 20)
	target := newBearer("Skeleton", grammar.It, 100, 100)

	assert.Equal(t, []*action.Action{cheap}, action.Eligible([]*action.Action{cheap, dear}, user, target))
}

func TestNewStatImposition(t *testing.T) {
	_, err := action.NewStatImposition("", 3)
	assert.ErrorIs(t, err, action.ErrMissingStat)
	_, err = action.NewStatImposition("mana", 3)
	assert.ErrorIs(t, err, action.ErrUnknownStat)
	imp, err := action.NewStatImposition(stat.Health, 3)
	require.NoError(t, err)
	assert.Equal(t, action.Health(3), imp)
}

func TestActiveTick_ExpiresWithRecoveryLine(t *testing.T) {
	src := testutil.NewSource(nil, nil)
	env, rec := newEnv(src)
	you := newBearer("You", grammar.You, 100, 100)
	active := &action.Active{
		Effect:    &action.Effect{ID: "winded", Name: "Winded", Turn: []action.Imposition{action.Stamina(17)}},
		Remaining: 1,
	}

	expired, err := active.Tick(context.Background(), env, you)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, 83, you.Stat(stat.Stamina).Value())
	assert.Equal(t, []string{
		"You are Winded!",
		"    [You] -17 (83) Stamina",
		"You recover from Winded.",
	}, rec.Plain())
}
