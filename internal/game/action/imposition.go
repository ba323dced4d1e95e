// Package action implements combat actions: the costs they impose on their
// user, the effects they impose on their target, status effects, and the
// catalog that registers them.
package action

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
	"github.com/cory-johannsen/skirmish/internal/host"
	"github.com/cory-johannsen/skirmish/internal/markup"
)

var (
	// ErrMissingStat is returned for an imposition without a stat key.
	ErrMissingStat = errors.New("action: imposition has no stat key")
	// ErrUnknownStat is returned for an imposition naming an unknown stat.
	ErrUnknownStat = errors.New("action: unknown stat key")
)

// Bearer is anything impositions can act on.
type Bearer interface {
	// Stat returns the named resource, or nil if the bearer has none.
	Stat(k stat.Key) *stat.Ranged
	Profile() *grammar.Profile
}

// Afflictable bearers can carry status effects.
type Afflictable interface {
	Bearer
	Afflict(e *Effect, turns int)
}

// Env carries the collaborators an action needs while executing.
type Env struct {
	Sink    host.Sink
	Rand    dice.Source
	Grammar *grammar.Formatter
	Logger  *zap.Logger
}

func (e *Env) say(ctx context.Context, template string, parts grammar.Participants) error {
	line, err := e.Grammar.Format(template, parts)
	if err != nil {
		return err
	}
	return e.Sink.Emit(ctx, line)
}

// Imposition is a cost or effect that can be checked against and applied to a bearer.
// Impositions carry no per-bearer state and are shared by every action using them.
type Imposition interface {
	// Check reports whether b can bear the imposition.
	Check(b Bearer) bool
	// Impose applies the imposition to b.
	Impose(b Bearer)
	// Describe renders the narration line for b after Impose.
	Describe(b Bearer, f *grammar.Formatter) (string, error)
}

var statStyles = map[stat.Key]string{
	stat.Stamina: "darkgreen",
	stat.Health:  "red",
}

// StatImposition removes Amount from one resource. A negative Amount restores it.
type StatImposition struct {
	Key    stat.Key
	Amount int
}

// NewStatImposition validates key and returns the imposition.
//
// Postcondition: Returns ErrMissingStat for an empty key and ErrUnknownStat
// for an unrecognised one.
func NewStatImposition(key stat.Key, amount int) (StatImposition, error) {
	if key == "" {
		return StatImposition{}, ErrMissingStat
	}
	if !key.Valid() {
		return StatImposition{}, fmt.Errorf("%w %q", ErrUnknownStat, key)
	}
	return StatImposition{Key: key, Amount: amount}, nil
}

// Stamina returns an imposition costing amount stamina.
func Stamina(amount int) StatImposition { return StatImposition{Key: stat.Stamina, Amount: amount} }

// Health returns an imposition dealing amount damage.
func Health(amount int) StatImposition { return StatImposition{Key: stat.Health, Amount: amount} }

// Check reports whether the bearer holds at least Amount of the resource.
func (s StatImposition) Check(b Bearer) bool {
	r := b.Stat(s.Key)
	return r != nil && r.Value() >= s.Amount
}

// Impose subtracts Amount, clamped by the resource's bounds.
func (s StatImposition) Impose(b Bearer) {
	if r := b.Stat(s.Key); r != nil {
		r.Alter(-s.Amount)
	}
}

// Describe renders "    [Name] -4 (6) Stamina" coloured by resource.
func (s StatImposition) Describe(b Bearer, f *grammar.Formatter) (string, error) {
	r := b.Stat(s.Key)
	if r == nil {
		return "", fmt.Errorf("action: %s has no %s", b.Profile().DisplayName, s.Key)
	}
	delta := fmt.Sprintf("%+d (%d) %s", -s.Amount, r.Value(), r.Name)
	return f.Format("    [{Combatant}] "+markup.Wrap(statStyles[s.Key], delta),
		grammar.Participants{"combatant": b.Profile()})
}

// applyAll imposes each imposition in order, narrating after each one.
func applyAll(ctx context.Context, env *Env, b Bearer, imps []Imposition) error {
	for _, imp := range imps {
		imp.Impose(b)
		line, err := imp.Describe(b, env.Grammar)
		if err != nil {
			return err
		}
		if err := env.Sink.Emit(ctx, line); err != nil {
			return err
		}
	}
	return nil
}
