// Package npc provides enemy template definitions and the weighted
// appearance pool enemies are conjured from.
package npc

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
)

// Template defines a reusable combatant archetype loaded from YAML. The
// player is described by a Template too.
type Template struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Pronouns   grammar.PronounSet `yaml:"pronouns"`
	Style      string             `yaml:"style"`
	MaxHealth  int                `yaml:"max_health"`
	MaxStamina int                `yaml:"max_stamina"`
	// Speed is a dice expression rolled per instance, e.g. "1d30" or "15".
	Speed string   `yaml:"speed"`
	Items []string `yaml:"items"`
	// Innate lists the action ids of the unarmed pseudo-item.
	Innate      []string `yaml:"innate"`
	InnateName  string   `yaml:"innate_name"`
	InnateStyle string   `yaml:"innate_style"`
	// Weight is the relative chance of this template appearing. Zero never appears.
	Weight int `yaml:"weight"`
	// Script is optional Lua source defining a choose hook.
	Script string `yaml:"script"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every field is valid; all violations are reported together.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if t.MaxHealth < 1 {
		errs = append(errs, errors.New("max_health must be >= 1"))
	}
	if t.MaxStamina < 1 {
		errs = append(errs, errors.New("max_stamina must be >= 1"))
	}
	if t.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if expr, err := dice.Parse(t.Speed); err != nil {
		errs = append(errs, fmt.Errorf("speed: %w", err))
	} else if expr.Min() < 0 {
		errs = append(errs, fmt.Errorf("speed %q can roll below zero", t.Speed))
	}
	if len(t.Innate) > 0 && t.InnateName == "" {
		errs = append(errs, errors.New("innate_name is required when innate actions are listed"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// ParseTemplates decodes a YAML document of the form "enemies: [...]" and
// validates every template.
func ParseTemplates(data []byte) ([]*Template, error) {
	var doc struct {
		Enemies []*Template `yaml:"enemies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing enemy templates: %w", err)
	}
	for _, t := range doc.Enemies {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Enemies, nil
}

// ParseTemplate decodes and validates a single template document.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
