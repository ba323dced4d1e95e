package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// Record is the plain serialisable form of a Combatant. Items and innate
// actions are stored as catalog ids.
type Record struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Pronouns    grammar.PronounSet `yaml:"pronouns" json:"pronouns"`
	Style       string             `yaml:"style,omitempty" json:"style,omitempty"`
	Health      int                `yaml:"health" json:"health"`
	MaxHealth   int                `yaml:"max_health" json:"max_health"`
	Stamina     int                `yaml:"stamina" json:"stamina"`
	MaxStamina  int                `yaml:"max_stamina" json:"max_stamina"`
	Speed       int                `yaml:"speed" json:"speed"`
	Items       []string           `yaml:"items,omitempty" json:"items,omitempty"`
	InnateName  string             `yaml:"innate_name,omitempty" json:"innate_name,omitempty"`
	InnateStyle string             `yaml:"innate_style,omitempty" json:"innate_style,omitempty"`
	Innate      []string           `yaml:"innate,omitempty" json:"innate,omitempty"`
}

// Record returns the combatant's serialisable form. Active status effects
// are battle-scoped and not recorded.
func (c *Combatant) Record() Record {
	rec := Record{
		ID:         c.ID,
		Name:       c.Lang.TrueName,
		Pronouns:   c.Lang.Pronouns,
		Style:      c.Lang.Style,
		Health:     c.Health.Value(),
		MaxHealth:  c.Health.Max,
		Stamina:    c.Stamina.Value(),
		MaxStamina: c.Stamina.Max,
		Speed:      c.Speed,
		Items:      c.Inventory.IDs(),
	}
	if c.Innate != nil {
		rec.InnateName = c.Innate.Name
		rec.InnateStyle = c.Innate.Style
		for _, a := range c.Innate.Actions {
			rec.Innate = append(rec.Innate, a.ID)
		}
	}
	return rec
}

// FromRecord rebuilds a combatant from rec, resolving ids against items and actions.
//
// Postcondition: returns an error for unknown ids or non-positive maxima.
func FromRecord(rec Record, items *inventory.Registry, actions *action.Catalog, ctrl Controller) (*Combatant, error) {
	if rec.MaxHealth <= 0 || rec.MaxStamina <= 0 {
		return nil, errors.New("combat: record maxima must be > 0")
	}
	held, err := items.Resolve(rec.Items)
	if err != nil {
		return nil, fmt.Errorf("combat: record %q: %w", rec.ID, err)
	}
	var innate *inventory.Item
	if len(rec.Innate) > 0 {
		acts, err := actions.Resolve(rec.Innate)
		if err != nil {
			return nil, fmt.Errorf("combat: record %q: %w", rec.ID, err)
		}
		innate = inventory.Innate(rec.InnateName, rec.InnateStyle, acts)
	}
	c := NewCombatant(Options{
		ID:         rec.ID,
		Name:       rec.Name,
		Pronouns:   rec.Pronouns,
		Style:      rec.Style,
		MaxHealth:  rec.MaxHealth,
		MaxStamina: rec.MaxStamina,
		Speed:      rec.Speed,
		Items:      held,
		Innate:     innate,
		Controller: ctrl,
	})
	c.Health = stat.NewRangedAt(stat.Health.Title(), rec.MaxHealth, rec.Health)
	c.Stamina = stat.NewRangedAt(stat.Stamina.Title(), rec.MaxStamina, rec.Stamina)
	return c, nil
}
