package action

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Catalog holds every registered action and effect indexed by ID.
type Catalog struct {
	actions map[string]*Action
	effects map[string]*Effect
	order   []string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		actions: make(map[string]*Action),
		effects: make(map[string]*Effect),
	}
}

// RegisterAction adds a to the catalog.
//
// Postcondition: Action(a.ID) returns a; returns error if a.ID is already registered.
func (c *Catalog) RegisterAction(a *Action) error {
	if _, exists := c.actions[a.ID]; exists {
		return fmt.Errorf("action: Catalog.RegisterAction: action ID %q already registered", a.ID)
	}
	c.actions[a.ID] = a
	c.order = append(c.order, a.ID)
	return nil
}

// RegisterEffect adds e to the catalog.
func (c *Catalog) RegisterEffect(e *Effect) error {
	if _, exists := c.effects[e.ID]; exists {
		return fmt.Errorf("action: Catalog.RegisterEffect: effect ID %q already registered", e.ID)
	}
	c.effects[e.ID] = e
	return nil
}

// Action returns the action with the given id and whether it was found.
func (c *Catalog) Action(id string) (*Action, bool) {
	a, ok := c.actions[id]
	return a, ok
}

// Effect returns the effect with the given id and whether it was found.
func (c *Catalog) Effect(id string) (*Effect, bool) {
	e, ok := c.effects[id]
	return e, ok
}

// Actions returns every action in registration order.
func (c *Catalog) Actions() []*Action {
	out := make([]*Action, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.actions[id])
	}
	return out
}

// Resolve looks up each id in order.
//
// Postcondition: returns an error naming the first unknown id.
func (c *Catalog) Resolve(ids []string) ([]*Action, error) {
	out := make([]*Action, 0, len(ids))
	for _, id := range ids {
		a, ok := c.actions[id]
		if !ok {
			return nil, fmt.Errorf("action: unknown action %q", id)
		}
		out = append(out, a)
	}
	return out, nil
}

// sampleParticipants is used to check that every template formats at load time.
var sampleParticipants = grammar.Participants{
	"user":   grammar.NewProfile("User", grammar.He, ""),
	"target": grammar.NewProfile("Target", grammar.It, ""),
}

// Load validates defs and registers their effects and actions into c. Message
// pools draw from src.
//
// Postcondition: on error c may hold a partial set of registrations.
func (c *Catalog) Load(defs Defs, src dice.Source) error {
	for i := range defs.Effects {
		d := &defs.Effects[i]
		if err := d.Validate(); err != nil {
			return err
		}
		turn, err := buildImpositions(d.Turn)
		if err != nil {
			return err
		}
		name := d.Name
		if d.Style != "" {
			name = markup.Wrap(d.Style, d.Name)
		}
		if err := c.RegisterEffect(&Effect{
			ID:        d.ID,
			Name:      name,
			Turn:      turn,
			MinTurns:  d.MinTurns,
			MaxTurns:  d.MaxTurns,
			SkipsTurn: d.SkipsTurn,
		}); err != nil {
			return err
		}
	}
	for i := range defs.Actions {
		a, err := c.build(&defs.Actions[i], src)
		if err != nil {
			return err
		}
		if err := c.RegisterAction(a); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) build(d *ActionDef, src dice.Source) (*Action, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	fail := d.Fail
	if len(fail) == 0 {
		fail = []string{DefaultFailMessage}
	}
	for _, tmpl := range append(append([]string{}, d.Attempt...), fail...) {
		if _, err := grammar.Format(tmpl, sampleParticipants); err != nil {
			return nil, fmt.Errorf("action %q template %q: %w", d.ID, tmpl, err)
		}
	}
	user, err := buildImpositions(d.User)
	if err != nil {
		return nil, err
	}
	target, err := buildImpositions(d.Target)
	if err != nil {
		return nil, err
	}
	attempt, err := message.NewPool(d.Attempt, src)
	if err != nil {
		return nil, err
	}
	failPool, err := message.NewPool(fail, src)
	if err != nil {
		return nil, err
	}
	a := &Action{
		ID:       d.ID,
		Name:     d.Name,
		User:     user,
		Target:   target,
		FailRate: d.FailRate,
		Attempt:  attempt,
		Fail:     failPool,
	}
	for _, inf := range d.Inflicts {
		e, ok := c.effects[inf.Effect]
		if !ok {
			return nil, fmt.Errorf("action %q inflicts unknown effect %q", d.ID, inf.Effect)
		}
		a.Inflicts = append(a.Inflicts, Infliction{Effect: e, Chance: inf.Chance})
	}
	return a, nil
}
