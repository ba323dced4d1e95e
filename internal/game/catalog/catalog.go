// Package catalog loads the battle content tables (actions, effects, items,
// enemies and the player) from a filesystem into registries.
package catalog

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
)

// File names read by Load.
const (
	EffectsFile = "effects.yaml"
	ActionsFile = "actions.yaml"
	ItemsFile   = "items.yaml"
	EnemiesFile = "enemies.yaml"
	PlayerFile  = "player.yaml"
)

// Catalog is the loaded content.
type Catalog struct {
	Actions  *action.Catalog
	Items    *inventory.Registry
	Enemies  *npc.Bestiary
	Player   *npc.Bestiary
	playerID string
}

// Options configures Load.
type Options struct {
	Rand        dice.Source
	Logger      *zap.Logger
	ScriptLimit int
}

// Load reads every content file from fsys and cross-checks references.
//
// Precondition: opts.Rand is non-nil.
// Postcondition: returns the first configuration error found.
func Load(ctx context.Context, fsys fs.FS, opts Options) (*Catalog, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var defs action.Defs
	for _, name := range []string{EffectsFile, ActionsFile} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		d, err := action.ParseDefs(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", name, err)
		}
		defs.Effects = append(defs.Effects, d.Effects...)
		defs.Actions = append(defs.Actions, d.Actions...)
	}
	actions := action.NewCatalog()
	if err := actions.Load(defs, opts.Rand); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	data, err := fs.ReadFile(fsys, ItemsFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	itemDefs, err := inventory.ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", ItemsFile, err)
	}
	items := inventory.NewRegistry()
	if err := items.Load(itemDefs, actions); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", ItemsFile, err)
	}

	cfg := npc.Config{
		Items:       items,
		Actions:     actions,
		Rand:        opts.Rand,
		Logger:      opts.Logger,
		ScriptLimit: opts.ScriptLimit,
	}
	data, err = fs.ReadFile(fsys, EnemiesFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	templates, err := npc.ParseTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", EnemiesFile, err)
	}
	enemyCfg := cfg
	enemyCfg.RequireFallback = true
	enemies, err := npc.NewBestiary(ctx, templates, enemyCfg)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", EnemiesFile, err)
	}

	data, err = fs.ReadFile(fsys, PlayerFile)
	if err != nil {
		enemies.Close()
		return nil, fmt.Errorf("catalog: %w", err)
	}
	hero, err := npc.ParseTemplate(data)
	if err != nil {
		enemies.Close()
		return nil, fmt.Errorf("catalog: %s: %w", PlayerFile, err)
	}
	player, err := npc.NewBestiary(ctx, []*npc.Template{hero}, cfg)
	if err != nil {
		enemies.Close()
		return nil, fmt.Errorf("catalog: %s: %w", PlayerFile, err)
	}

	opts.Logger.Info("catalog loaded",
		zap.Int("effects", len(defs.Effects)),
		zap.Int("actions", len(actions.Actions())),
		zap.Int("items", len(items.Items())),
		zap.Int("enemies", len(templates)),
	)
	return &Catalog{
		Actions:  actions,
		Items:    items,
		Enemies:  enemies,
		Player:   player,
		playerID: hero.ID,
	}, nil
}

// NewPlayer builds the player combatant driven by ctrl.
func (c *Catalog) NewPlayer(ctrl combat.Controller) (*combat.Combatant, error) {
	return c.Player.Build(c.playerID, ctrl)
}

// Close releases compiled scripts.
func (c *Catalog) Close() {
	c.Enemies.Close()
	c.Player.Close()
}
