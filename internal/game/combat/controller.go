package combat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/host"
	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Plan is a chosen move. The zero Plan means the combatant skips its turn.
type Plan struct {
	Action *action.Action
	Target *Combatant
}

// Skip reports whether the plan is to do nothing.
func (p Plan) Skip() bool { return p.Action == nil }

// Controller decides a combatant's move each round.
type Controller interface {
	// PlanAttack chooses an action and target for self. enemies may include
	// incapacitated combatants.
	PlanAttack(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (Plan, error)
}

// Preference lets content narrow an AI's choice among eligible actions.
type Preference interface {
	// Choose returns the id of the preferred action among actions, or "" for no preference.
	Choose(ctx context.Context, actions []string, self, target Snapshot) (string, error)
}

// AI picks a random living enemy, then a random eligible action against it.
type AI struct {
	// Preference is consulted before the random pick; may be nil.
	Preference Preference
}

// PlanAttack implements Controller.
//
// Postcondition: returns a skip Plan when no enemy is alive or no action is eligible.
func (ai *AI) PlanAttack(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (Plan, error) {
	targets := living(enemies)
	if len(targets) == 0 {
		return Plan{}, nil
	}
	target := dice.Pick(env.Rand, targets)
	eligible := self.EligibleActions(target)
	if len(eligible) == 0 {
		env.Logger.Warn("no eligible action",
			zap.String("combatant", self.Lang.DisplayName),
			zap.String("target", target.Lang.DisplayName),
		)
		return Plan{}, nil
	}
	if ai.Preference != nil {
		if a := ai.preferred(ctx, env, self, target, eligible); a != nil {
			return Plan{Action: a, Target: target}, nil
		}
	}
	return Plan{Action: dice.Pick(env.Rand, eligible), Target: target}, nil
}

func (ai *AI) preferred(ctx context.Context, env *Env, self, target *Combatant, eligible []*action.Action) *action.Action {
	ids := make([]string, len(eligible))
	for i, a := range eligible {
		ids[i] = a.ID
	}
	id, err := ai.Preference.Choose(ctx, ids, self.Snapshot(), target.Snapshot())
	if err != nil {
		env.Logger.Warn("preference hook failed",
			zap.String("combatant", self.Lang.DisplayName),
			zap.Error(err),
		)
		return nil
	}
	for _, a := range eligible {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Menu labels shown by the Player controller.
const (
	ItemsLabel = "<blue>Items</blue>"
	SkipLabel  = "<gray>Skip Turn</gray>"
)

// Player asks the user through env.Prompter.
type Player struct{}

type rootChoice struct {
	item  *inventory.Item
	items bool
	skip  bool
}

// PlanAttack implements Controller with a hierarchical menu: weapons and the
// innate set, an Items sub-menu and Skip Turn at the root; each item leads to
// its action list with a Back option; the chosen action then needs a target
// among self and the living enemies.
func (Player) PlanAttack(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (Plan, error) {
	for {
		var root []host.Option[rootChoice]
		for _, it := range self.Arsenal() {
			root = append(root, host.Option[rootChoice]{Label: it.ListFormatted(), Value: rootChoice{item: it}})
		}
		root = append(root,
			host.Option[rootChoice]{Label: ItemsLabel, Value: rootChoice{items: true}},
			host.Option[rootChoice]{Label: SkipLabel, Value: rootChoice{skip: true}},
		)
		choice, _, err := host.Choose(ctx, env.Prompter, "What will you use?", root, false)
		if err != nil {
			return Plan{}, err
		}
		if choice.skip {
			return Plan{}, nil
		}

		item := choice.item
		if choice.items {
			var ok bool
			item, ok, err = chooseItem(ctx, env, self)
			if err != nil {
				return Plan{}, err
			}
			if !ok {
				continue
			}
		}

		act, ok, err := chooseAction(ctx, env, item)
		if err != nil {
			return Plan{}, err
		}
		if !ok {
			continue
		}

		target, err := chooseTarget(ctx, env, self, enemies)
		if err != nil {
			return Plan{}, err
		}
		if !act.Check(self, target) {
			if err := env.Sink.Emit(ctx, markup.Wrap("red", fmt.Sprintf("You can't %s %s right now.", strings.ToLower(act.Name), target.Lang.DisplayName))); err != nil {
				return Plan{}, err
			}
			continue
		}
		return Plan{Action: act, Target: target}, nil
	}
}

func chooseItem(ctx context.Context, env *Env, self *Combatant) (*inventory.Item, bool, error) {
	var opts []host.Option[*inventory.Item]
	for _, it := range self.Inventory.NonWeapons() {
		if len(it.Actions) > 0 {
			opts = append(opts, host.Option[*inventory.Item]{Label: it.ListFormatted(), Value: it})
		}
	}
	if len(opts) == 0 {
		return nil, false, env.Sink.Emit(ctx, markup.Wrap("gray", "You have nothing you can use."))
	}
	return host.Choose(ctx, env.Prompter, "Which item will you use?", opts, true)
}

func chooseAction(ctx context.Context, env *Env, item *inventory.Item) (*action.Action, bool, error) {
	opts := make([]host.Option[*action.Action], len(item.Actions))
	for i, a := range item.Actions {
		opts[i] = host.Option[*action.Action]{Label: a.Name, Value: a}
	}
	return host.Choose(ctx, env.Prompter, "What will you do with "+item.Display()+"?", opts, true)
}

func chooseTarget(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (*Combatant, error) {
	candidates := append([]*Combatant{self}, living(enemies)...)
	opts := make([]host.Option[*Combatant], len(candidates))
	for i, c := range candidates {
		opts[i] = host.Option[*Combatant]{Label: c.Lang.Pretty(), Value: c}
	}
	target, _, err := host.Choose(ctx, env.Prompter, "Who will you target?", opts, false)
	return target, err
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (Plan, error)

// PlanAttack calls f.
func (f ControllerFunc) PlanAttack(ctx context.Context, env *Env, self *Combatant, enemies []*Combatant) (Plan, error) {
	return f(ctx, env, self, enemies)
}
