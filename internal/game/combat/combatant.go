// Package combat implements the turn-based battle engine: combatants, their
// controllers, and the round orchestrator.
package combat

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// Combatant represents one participant in a battle, either player- or AI-controlled.
type Combatant struct {
	ID         string
	Lang       *grammar.Profile
	Health     *stat.Ranged
	Stamina    *stat.Ranged
	Speed      int
	Inventory  *inventory.Inventory
	Innate     *inventory.Item
	Controller Controller
	effects    []*action.Active
}

// Options configures NewCombatant.
type Options struct {
	// ID defaults to a fresh UUID.
	ID         string
	Name       string
	Pronouns   grammar.PronounSet
	Style      string
	MaxHealth  int
	MaxStamina int
	Speed      int
	Items      []*inventory.Item
	// Innate is the combatant's unarmed action set; may be nil.
	Innate     *inventory.Item
	Controller Controller
}

// NewCombatant builds a combatant at full health and stamina.
//
// Precondition: MaxHealth and MaxStamina are > 0; Controller is non-nil.
func NewCombatant(o Options) *Combatant {
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Combatant{
		ID:         id,
		Lang:       grammar.NewProfile(o.Name, o.Pronouns, o.Style),
		Health:     stat.NewRanged(stat.Health.Title(), o.MaxHealth),
		Stamina:    stat.NewRanged(stat.Stamina.Title(), o.MaxStamina),
		Speed:      o.Speed,
		Inventory:  inventory.New(o.Items...),
		Innate:     o.Innate,
		Controller: o.Controller,
	}
}

// Stat returns the resource named by k, or nil.
func (c *Combatant) Stat(k stat.Key) *stat.Ranged {
	switch k {
	case stat.Health:
		return c.Health
	case stat.Stamina:
		return c.Stamina
	default:
		return nil
	}
}

// Profile returns the combatant's narration identity.
func (c *Combatant) Profile() *grammar.Profile { return c.Lang }

// IsAlive reports whether the combatant still has health.
func (c *Combatant) IsAlive() bool { return !c.Health.Empty() }

func (c *Combatant) String() string { return c.Lang.DisplayName }

// Afflict starts e on the combatant for turns turns. Re-afflicting an active
// effect extends it to the longer of the two durations.
func (c *Combatant) Afflict(e *action.Effect, turns int) {
	for _, a := range c.effects {
		if a.Effect.ID == e.ID {
			a.Remaining = max(a.Remaining, turns)
			return
		}
	}
	c.effects = append(c.effects, &action.Active{Effect: e, Remaining: turns})
}

// Effects returns the active effects in the order they were inflicted.
func (c *Combatant) Effects() []*action.Active {
	return append([]*action.Active(nil), c.effects...)
}

// Arsenal returns the held weapons followed by the innate pseudo-item.
func (c *Combatant) Arsenal() []*inventory.Item {
	items := c.Inventory.Weapons()
	if c.Innate != nil {
		items = append(items, c.Innate)
	}
	return items
}

// EligibleActions returns the union of eligible actions across the arsenal
// against target, without duplicates, in arsenal order.
func (c *Combatant) EligibleActions(target *Combatant) []*action.Action {
	seen := make(map[*action.Action]bool)
	var out []*action.Action
	for _, it := range c.Arsenal() {
		for _, a := range it.EligibleActions(c, target) {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

// Snapshot is a read-only view of a combatant handed to preference hooks.
type Snapshot struct {
	Name       string
	Health     int
	MaxHealth  int
	Stamina    int
	MaxStamina int
	Speed      int
}

// Snapshot returns the combatant's current view.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		Name:       c.Lang.DisplayName,
		Health:     c.Health.Value(),
		MaxHealth:  c.Health.Max,
		Stamina:    c.Stamina.Value(),
		MaxStamina: c.Stamina.Max,
		Speed:      c.Speed,
	}
}

func living(cs []*Combatant) []*Combatant {
	var out []*Combatant
	for _, c := range cs {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}
