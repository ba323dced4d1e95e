package action

import (
	"context"

	"github.com/cory-johannsen/skirmish/internal/game/grammar"
)

// Effect is a lingering status that imposes Turn on its bearer at the start
// of each of the bearer's turns.
type Effect struct {
	ID string
	// Name is the styled display name, e.g. "<red>Bleeding</red>".
	Name      string
	Turn      []Imposition
	MinTurns  int
	MaxTurns  int
	SkipsTurn bool
}

// Active is an Effect currently carried by a bearer.
type Active struct {
	Effect    *Effect
	Remaining int
}

// Tick applies the effect's turn impositions to b and narrates them, then
// counts down one turn.
//
// Postcondition: expired is true when no turns remain; the recovery line has
// then already been emitted.
func (a *Active) Tick(ctx context.Context, env *Env, b Bearer) (expired bool, err error) {
	parts := grammar.Participants{"combatant": b.Profile()}
	head, err := env.Grammar.Format("{Combatant} {combatant.is}", parts)
	if err != nil {
		return false, err
	}
	if err := env.Sink.Emit(ctx, head+" "+a.Effect.Name+"!"); err != nil {
		return false, err
	}
	if err := applyAll(ctx, env, b, a.Effect.Turn); err != nil {
		return false, err
	}
	a.Remaining--
	if a.Remaining > 0 {
		return false, nil
	}
	head, err = env.Grammar.Format("{Combatant} {combatant.recovers} from", parts)
	if err != nil {
		return true, err
	}
	return true, env.Sink.Emit(ctx, head+" "+a.Effect.Name+".")
}
