// Package inventory models the items a combatant carries and the actions
// they make available.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Kind classifies an item.
type Kind string

// Kind constants for ItemDef.Kind.
const (
	KindWeapon Kind = "weapon"
	KindItem   Kind = "item"
	// KindInnate marks the synthetic item wrapping a combatant's innate actions.
	KindInnate Kind = "innate"
)

// Item is an immutable catalog entry. Items are shared by reference between
// every inventory holding them.
type Item struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Style       string
	Actions     []*action.Action
}

// Innate wraps a combatant's innate action set as an item so menus can treat
// unarmed attacks like weapons.
func Innate(name, style string, actions []*action.Action) *Item {
	return &Item{
		ID:      "innate",
		Name:    name,
		Kind:    KindInnate,
		Style:   style,
		Actions: actions,
	}
}

// IsWeapon reports whether the item is a weapon.
func (i *Item) IsWeapon() bool { return i.Kind == KindWeapon }

// Display returns the styled item name.
func (i *Item) Display() string { return markup.Wrap(i.Style, i.Name) }

func (i *Item) String() string { return i.Name }

// ListFormatted renders the item with its actions, e.g. "Dagger (Slash, Stab)".
// An item without actions renders as "Leather Coat (...)".
func (i *Item) ListFormatted() string {
	if len(i.Actions) == 0 {
		return i.Display() + " (...)"
	}
	names := make([]string, len(i.Actions))
	for n, a := range i.Actions {
		names[n] = a.Name
	}
	return i.Display() + " (" + strings.Join(names, ", ") + ")"
}

// EligibleActions returns the item's actions whose checks pass for user against target.
func (i *Item) EligibleActions(user, target action.Bearer) []*action.Action {
	return action.Eligible(i.Actions, user, target)
}

// ItemDef defines an item loaded from YAML.
type ItemDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        Kind     `yaml:"kind"`
	Style       string   `yaml:"style"`
	Actions     []string `yaml:"actions"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Kind != KindWeapon && d.Kind != KindItem {
		errs = append(errs, fmt.Errorf("kind must be one of weapon, item; got %q", d.Kind))
	}
	if d.Kind == KindWeapon && len(d.Actions) == 0 {
		errs = append(errs, errors.New("a weapon must list at least one action"))
	}
	if d.Style != "" {
		if _, ok := markup.Styles[d.Style]; !ok {
			errs = append(errs, fmt.Errorf("unknown style %q", d.Style))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// ParseItems decodes a YAML document of the form "items: [...]".
func ParseItems(data []byte) ([]*ItemDef, error) {
	var doc struct {
		Items []*ItemDef `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("inventory: cannot parse items: %w", err)
	}
	return doc.Items, nil
}
