package action

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// DefaultFailMessage is used when an action definition lists no failure templates.
const DefaultFailMessage = "...But it failed!"

// ImpositionDef is the YAML form of a StatImposition.
type ImpositionDef struct {
	Stat   stat.Key `yaml:"stat"`
	Amount int      `yaml:"amount"`
}

// Build converts the definition into a StatImposition.
func (d ImpositionDef) Build() (StatImposition, error) {
	return NewStatImposition(d.Stat, d.Amount)
}

// InflictionDef names an effect an action may inflict and its chance in [0, 1].
type InflictionDef struct {
	Effect string  `yaml:"effect"`
	Chance float64 `yaml:"chance"`
}

// ActionDef defines an action loaded from YAML.
type ActionDef struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	User     []ImpositionDef `yaml:"user"`
	Target   []ImpositionDef `yaml:"target"`
	FailRate float64         `yaml:"fail_rate"`
	Attempt  []string        `yaml:"attempt"`
	Fail     []string        `yaml:"fail"`
	Inflicts []InflictionDef `yaml:"inflicts"`
}

// Validate checks the definition's own fields. References to effects are
// resolved by the Catalog.
//
// Postcondition: returns nil iff all fields are valid.
func (d *ActionDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.FailRate < 0 || d.FailRate > 1 {
		errs = append(errs, fmt.Errorf("fail_rate must be in [0, 1], got %v", d.FailRate))
	}
	if len(d.Attempt) == 0 {
		errs = append(errs, errors.New("attempt must list at least one template"))
	}
	for _, imp := range append(append([]ImpositionDef{}, d.User...), d.Target...) {
		if _, err := imp.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, inf := range d.Inflicts {
		if inf.Effect == "" {
			errs = append(errs, errors.New("inflicts entry has no effect"))
		}
		if inf.Chance < 0 || inf.Chance > 1 {
			errs = append(errs, fmt.Errorf("inflicts %q chance must be in [0, 1], got %v", inf.Effect, inf.Chance))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("action %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// EffectDef defines a status effect loaded from YAML.
type EffectDef struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Style     string          `yaml:"style"`
	Turn      []ImpositionDef `yaml:"turn"`
	MinTurns  int             `yaml:"min_turns"`
	MaxTurns  int             `yaml:"max_turns"`
	SkipsTurn bool            `yaml:"skips_turn"`
}

// Validate fills default durations and checks the definition.
//
// Postcondition: MinTurns and MaxTurns default to 1 and 5 when unset.
func (d *EffectDef) Validate() error {
	if d.MinTurns == 0 {
		d.MinTurns = 1
	}
	if d.MaxTurns == 0 {
		d.MaxTurns = 5
	}
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.MinTurns < 1 || d.MaxTurns < d.MinTurns {
		errs = append(errs, fmt.Errorf("turns must satisfy 1 <= min_turns <= max_turns, got %d..%d", d.MinTurns, d.MaxTurns))
	}
	for _, imp := range d.Turn {
		if _, err := imp.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("effect %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// Defs is the layout of an actions or effects YAML document.
type Defs struct {
	Effects []EffectDef `yaml:"effects"`
	Actions []ActionDef `yaml:"actions"`
}

// ParseDefs decodes a YAML document into Defs.
func ParseDefs(data []byte) (Defs, error) {
	var d Defs
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defs{}, fmt.Errorf("action: cannot parse definitions: %w", err)
	}
	return d, nil
}

func buildImpositions(defs []ImpositionDef) ([]Imposition, error) {
	out := make([]Imposition, 0, len(defs))
	for _, d := range defs {
		imp, err := d.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, imp)
	}
	return out, nil
}
