package npc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

var (
	// ErrNoAppearances is returned by Conjure when no template has a positive weight.
	ErrNoAppearances = errors.New("npc: no template can appear")
	// ErrNoFallback is returned when an AI template's innate set has no free action.
	ErrNoFallback = errors.New("npc: innate set has no action free of user costs")
)

// resolved is a template with its references bound.
type resolved struct {
	tmpl   *Template
	speed  dice.Expression
	items  []*inventory.Item
	innate *inventory.Item
	pref   combat.Preference
}

// Bestiary instantiates combatants from templates whose item, action and
// script references have been resolved up front.
type Bestiary struct {
	entries  []*resolved
	byID     map[string]*resolved
	src      dice.Source
	logger   *zap.Logger
	choosers []*scripting.Chooser
}

// Config configures NewBestiary.
type Config struct {
	Items   *inventory.Registry
	Actions *action.Catalog
	Rand    dice.Source
	Logger  *zap.Logger
	// ScriptLimit is the Lua instruction limit per hook call; 0 uses the default.
	ScriptLimit int
	// RequireFallback rejects templates whose innate set lacks a free action,
	// so an AI with spent stamina still has a move.
	RequireFallback bool
}

// NewBestiary resolves every template's references and compiles its script.
//
// Precondition: cfg.Items, cfg.Actions and cfg.Rand are non-nil.
// Postcondition: returns an error naming the first template with a bad reference.
func NewBestiary(ctx context.Context, templates []*Template, cfg Config) (*Bestiary, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	b := &Bestiary{byID: make(map[string]*resolved), src: cfg.Rand, logger: cfg.Logger}
	for _, t := range templates {
		if _, dup := b.byID[t.ID]; dup {
			b.Close()
			return nil, fmt.Errorf("npc: template ID %q already registered", t.ID)
		}
		r, err := b.resolve(ctx, t, cfg)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.entries = append(b.entries, r)
		b.byID[t.ID] = r
	}
	return b, nil
}

func (b *Bestiary) resolve(ctx context.Context, t *Template, cfg Config) (*resolved, error) {
	speed, err := dice.Parse(t.Speed)
	if err != nil {
		return nil, fmt.Errorf("npc template %q: %w", t.ID, err)
	}
	items, err := cfg.Items.Resolve(t.Items)
	if err != nil {
		return nil, fmt.Errorf("npc template %q: %w", t.ID, err)
	}
	r := &resolved{tmpl: t, speed: speed, items: items}
	if len(t.Innate) > 0 {
		acts, err := cfg.Actions.Resolve(t.Innate)
		if err != nil {
			return nil, fmt.Errorf("npc template %q: %w", t.ID, err)
		}
		r.innate = inventory.Innate(t.InnateName, t.InnateStyle, acts)
	}
	if cfg.RequireFallback && !hasFallback(r.innate) {
		return nil, fmt.Errorf("npc template %q: %w", t.ID, ErrNoFallback)
	}
	if t.Script != "" {
		c, err := scripting.NewChooser(ctx, t.ID, t.Script, cfg.Rand, cfg.ScriptLimit, cfg.Logger)
		if err != nil {
			return nil, err
		}
		b.choosers = append(b.choosers, c)
		r.pref = c
	}
	return r, nil
}

func hasFallback(innate *inventory.Item) bool {
	if innate == nil {
		return false
	}
	for _, a := range innate.Actions {
		if a.Free() {
			return true
		}
	}
	return false
}

// Templates returns the templates in load order.
func (b *Bestiary) Templates() []*Template {
	out := make([]*Template, len(b.entries))
	for i, r := range b.entries {
		out[i] = r.tmpl
	}
	return out
}

// Instantiate creates a fresh AI-controlled combatant from template id.
func (b *Bestiary) Instantiate(id string) (*combat.Combatant, error) {
	r, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("npc: unknown template %q", id)
	}
	return b.build(r, &combat.AI{Preference: r.pref}), nil
}

// Build creates a combatant from template id driven by ctrl, e.g. the player.
func (b *Bestiary) Build(id string, ctrl combat.Controller) (*combat.Combatant, error) {
	r, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("npc: unknown template %q", id)
	}
	return b.build(r, ctrl), nil
}

func (b *Bestiary) build(r *resolved, ctrl combat.Controller) *combat.Combatant {
	t := r.tmpl
	return combat.NewCombatant(combat.Options{
		Name:       t.Name,
		Pronouns:   t.Pronouns,
		Style:      t.Style,
		MaxHealth:  t.MaxHealth,
		MaxStamina: t.MaxStamina,
		Speed:      r.speed.Roll(b.src),
		Items:      r.items,
		Innate:     r.innate,
		Controller: ctrl,
	})
}

// Conjure picks an enemy count uniformly from [lo, hi], then draws that many
// templates with replacement, weighted by Weight, and instantiates each.
//
// Precondition: 0 <= lo <= hi.
// Postcondition: returns ErrNoAppearances if every weight is zero.
func (b *Bestiary) Conjure(lo, hi int) ([]*combat.Combatant, error) {
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("npc: invalid enemy range %d..%d", lo, hi)
	}
	weights := make([]int, len(b.entries))
	total := 0
	for i, r := range b.entries {
		weights[i] = r.tmpl.Weight
		total += r.tmpl.Weight
	}
	if total == 0 {
		return nil, ErrNoAppearances
	}
	count := dice.Between(b.src, lo, hi)
	out := make([]*combat.Combatant, 0, count)
	for n := 0; n < count; n++ {
		i, err := dice.WeightedIndex(b.src, weights)
		if err != nil {
			return nil, err
		}
		r := b.entries[i]
		out = append(out, b.build(r, &combat.AI{Preference: r.pref}))
	}
	b.logger.Debug("conjured enemies", zap.Int("count", count))
	return out, nil
}

// Close releases every compiled script.
func (b *Bestiary) Close() {
	for _, c := range b.choosers {
		c.Close()
	}
	b.choosers = nil
}
