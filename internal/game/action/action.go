package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Outcome is the result of executing an action.
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
)

func (o Outcome) String() string {
	if o == Failed {
		return "failed"
	}
	return "succeeded"
}

// Infliction is a status effect an action may leave on its target.
type Infliction struct {
	Effect *Effect
	Chance float64
}

// Action is a catalog entry describing one combat move. Actions are shared by
// every item or innate set that lists them.
type Action struct {
	ID       string
	Name     string
	User     []Imposition
	Target   []Imposition
	FailRate float64
	Attempt  *message.Pool
	Fail     *message.Pool
	Inflicts []Infliction
}

func (a *Action) String() string { return a.Name }

// Free reports whether the action costs its user nothing, so that only target
// impositions can make it ineligible.
func (a *Action) Free() bool { return len(a.User) == 0 }

// Check reports whether every user imposition fits user and every target
// imposition fits target. An action with no impositions always passes.
func (a *Action) Check(user, target Bearer) bool {
	for _, imp := range a.User {
		if !imp.Check(user) {
			return false
		}
	}
	for _, imp := range a.Target {
		if !imp.Check(target) {
			return false
		}
	}
	return true
}

// Execute narrates and resolves the action: the attempt line, then every user
// imposition (paid even if the action fails), then a single fail draw. On
// failure a failure line is emitted and target impositions are skipped;
// otherwise each target imposition is applied and narrated, followed by any
// inflicted status effects.
//
// Precondition: env fields are non-nil.
func (a *Action) Execute(ctx context.Context, env *Env, user, target Bearer) (Outcome, error) {
	parts := grammar.Participants{"user": user.Profile(), "target": target.Profile()}

	if err := env.say(ctx, a.Attempt.Sample(), parts); err != nil {
		return Succeeded, err
	}
	if err := applyAll(ctx, env, user, a.User); err != nil {
		return Succeeded, err
	}

	draw := env.Rand.Float64()
	if draw < a.FailRate {
		env.Logger.Debug("action failed",
			zap.String("action", a.ID),
			zap.String("user", user.Profile().DisplayName),
			zap.Float64("draw", draw),
			zap.Float64("fail_rate", a.FailRate),
		)
		line, err := env.Grammar.Format(a.Fail.Sample(), parts)
		if err != nil {
			return Failed, err
		}
		return Failed, env.Sink.Emit(ctx, markup.Wrap("red", line))
	}

	if err := applyAll(ctx, env, target, a.Target); err != nil {
		return Succeeded, err
	}
	if err := a.inflict(ctx, env, target, parts); err != nil {
		return Succeeded, err
	}
	env.Logger.Debug("action succeeded",
		zap.String("action", a.ID),
		zap.String("user", user.Profile().DisplayName),
		zap.String("target", target.Profile().DisplayName),
	)
	return Succeeded, nil
}

func (a *Action) inflict(ctx context.Context, env *Env, target Bearer, parts grammar.Participants) error {
	victim, ok := target.(Afflictable)
	if !ok {
		return nil
	}
	if h := target.Stat(stat.Health); h != nil && h.Empty() {
		return nil
	}
	for _, inf := range a.Inflicts {
		if env.Rand.Float64() >= inf.Chance {
			continue
		}
		turns := dice.Between(env.Rand, inf.Effect.MinTurns, inf.Effect.MaxTurns)
		victim.Afflict(inf.Effect, turns)
		head, err := env.Grammar.Format("{Target} {target.is} now", parts)
		if err != nil {
			return err
		}
		if err := env.Sink.Emit(ctx, head+" "+inf.Effect.Name+"!"); err != nil {
			return err
		}
	}
	return nil
}

// Eligible filters actions to those whose Check passes for user and target.
func Eligible(actions []*Action, user, target Bearer) []*Action {
	var out []*Action
	for _, a := range actions {
		if a.Check(user, target) {
			out = append(out, a)
		}
	}
	return out
}
