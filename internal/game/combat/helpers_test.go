package combat_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/host"
)

func newEnv(src dice.Source, prompter host.Prompter) (*combat.Env, *host.Recorder) {
	rec := &host.Recorder{}
	return &combat.Env{
		Env: action.Env{
			Sink:    rec,
			Rand:    src,
			Grammar: grammar.NewFormatter(zap.NewNop()),
			Logger:  zap.NewNop(),
		},
		Prompter: prompter,
	}, rec
}

func newAction(src dice.Source, id, name string, stamina, health int) *action.Action {
	a := &action.Action{
		ID:      id,
		Name:    name,
		Attempt: message.MustPool(src, "{User} {user.tries} "+id+" on {Target}."),
		Fail:    message.MustPool(src, action.DefaultFailMessage),
	}
	if stamina > 0 {
		a.User = []action.Imposition{action.Stamina(stamina)}
	}
	if health > 0 {
		a.Target = []action.Imposition{action.Health(health)}
	}
	return a
}

func weapon(id, name string, actions ...*action.Action) *inventory.Item {
	return &inventory.Item{ID: id, Name: name, Kind: inventory.KindWeapon, Actions: actions}
}

func newCombatant(name string, p grammar.PronounSet, speed int, ctrl combat.Controller, items ...*inventory.Item) *combat.Combatant {
	return combat.NewCombatant(combat.Options{
		Name:       name,
		Pronouns:   p,
		MaxHealth:  100,
		MaxStamina: 100,
		Speed:      speed,
		Items:      items,
		Controller: ctrl,
	})
}

// never fails the test if it is ever asked to plan.
func never(t *testing.T) combat.Controller {
	return combat.ControllerFunc(func(context.Context, *combat.Env, *combat.Combatant, []*combat.Combatant) (combat.Plan, error) {
		t.Helper()
		t.Error("controller should not have been called")
		return combat.Plan{}, nil
	})
}

// idle always skips.
var idle = combat.ControllerFunc(func(context.Context, *combat.Env, *combat.Combatant, []*combat.Combatant) (combat.Plan, error) {
	return combat.Plan{}, nil
})

// attack always uses a on the first enemy.
func attack(a *action.Action) combat.Controller {
	return combat.ControllerFunc(func(_ context.Context, _ *combat.Env, _ *combat.Combatant, enemies []*combat.Combatant) (combat.Plan, error) {
		return combat.Plan{Action: a, Target: enemies[0]}, nil
	})
}
