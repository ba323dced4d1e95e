package combat

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/host"
)

// ErrPartyCount is returned when a battle is given other than two parties.
var ErrPartyCount = errors.New("combat: a battle needs exactly two parties")

// Narration lines framing a battle.
const (
	IntroLine     = "=== It's time to battle! ==="
	SeparatorLine = "---"
	OutroLine     = "=== The battle is over. ==="
	StalemateLine = "=== The battle ends in a stalemate. ==="
)

// DefaultJoinMessages announce a combatant joining a battle.
var DefaultJoinMessages = []string{
	"{Guy} {guy.joins} the battle!",
	"{Guy} {guy.appears} out of nowhere!",
	"You're approached by {Guy}!",
}

// RoundOutcome reports how a round ended.
type RoundOutcome struct {
	// Over is true when a party has been wiped.
	Over bool
	// Wiped is the index of the wiped party when Over.
	Wiped int
}

// Continuing is the outcome of a round after which both parties still stand.
var Continuing = RoundOutcome{}

// PartyWiped returns the outcome for a round that ended with party i wiped.
func PartyWiped(i int) RoundOutcome { return RoundOutcome{Over: true, Wiped: i} }

func (o RoundOutcome) String() string {
	if !o.Over {
		return "continuing"
	}
	return fmt.Sprintf("party %d wiped", o.Wiped)
}

// Result summarises a finished battle. Winner and Loser are party indexes, or
// -1 when the round cap was reached first.
type Result struct {
	Winner int
	Loser  int
	Rounds int
}

// Decided reports whether a party was wiped.
func (r Result) Decided() bool { return r.Winner >= 0 }

// Battle orchestrates rounds between two parties.
//
// Invariant: len(parties) == 2.
type Battle struct {
	env     *Env
	joins   *message.Pool
	parties [2][]*Combatant
	round   int
	// MaxRounds stops Run after that many rounds; 0 means no cap.
	MaxRounds int
}

// NewBattle creates a battle between the given parties and disambiguates
// their display names. joins supplies arrival narration, keyed by "guy".
//
// Precondition: env carries a Sink, Prompter, Rand and Logger.
// Postcondition: returns ErrPartyCount unless exactly two parties are given.
func NewBattle(env *Env, joins *message.Pool, parties ...[]*Combatant) (*Battle, error) {
	if len(parties) != 2 {
		return nil, fmt.Errorf("%w, got %d", ErrPartyCount, len(parties))
	}
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Grammar == nil {
		env.Grammar = grammar.NewFormatter(env.Logger)
	}
	b := &Battle{env: env, joins: joins}
	for i, p := range parties {
		b.parties[i] = append([]*Combatant(nil), p...)
	}
	b.disambiguate()
	return b, nil
}

// Parties returns copies of both parties.
func (b *Battle) Parties() [][]*Combatant {
	return [][]*Combatant{
		append([]*Combatant(nil), b.parties[0]...),
		append([]*Combatant(nil), b.parties[1]...),
	}
}

// Round returns the number of rounds started so far.
func (b *Battle) Round() int { return b.round }

// UpdateParties appends additions[i] to party i, recomputes display-name
// disambiguation across everyone, then announces each newcomer.
//
// Postcondition: returns ErrPartyCount unless len(additions) == 2.
func (b *Battle) UpdateParties(ctx context.Context, additions ...[]*Combatant) error {
	if len(additions) != 2 {
		return fmt.Errorf("%w, got %d", ErrPartyCount, len(additions))
	}
	for i, add := range additions {
		b.parties[i] = append(b.parties[i], add...)
	}
	b.disambiguate()
	for _, add := range additions {
		if err := b.announce(ctx, add); err != nil {
			return err
		}
	}
	return nil
}

// disambiguate numbers combatants sharing a true name "(1)", "(2)", ... in
// party order and resets everyone else to their true name.
func (b *Battle) disambiguate() {
	all := b.all()
	counts := make(map[string]int)
	for _, c := range all {
		counts[c.Lang.TrueName]++
	}
	seen := make(map[string]int)
	for _, c := range all {
		name := c.Lang.TrueName
		if counts[name] < 2 {
			c.Lang.DisplayName = name
			continue
		}
		seen[name]++
		c.Lang.DisplayName = fmt.Sprintf("%s (%d)", name, seen[name])
	}
}

func (b *Battle) announce(ctx context.Context, cs []*Combatant) error {
	for _, c := range cs {
		line, err := b.env.Grammar.Format(b.joins.Sample(), grammar.Participants{"guy": c.Lang})
		if err != nil {
			return err
		}
		if err := b.env.Sink.Emit(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (b *Battle) all() []*Combatant {
	return append(append([]*Combatant(nil), b.parties[0]...), b.parties[1]...)
}

// Initiative returns every combatant ordered by descending speed. Ties are
// broken randomly each call: the list is shuffled before a stable sort.
func (b *Battle) Initiative() []*Combatant {
	order := b.all()
	dice.Shuffle(b.env.Rand, order)
	slices.SortStableFunc(order, func(x, y *Combatant) int { return cmp.Compare(y.Speed, x.Speed) })
	return order
}

func (b *Battle) partyOf(c *Combatant) int {
	if slices.Contains(b.parties[1], c) {
		return 1
	}
	return 0
}

// enemiesOf returns every member of the parties not containing c.
func (b *Battle) enemiesOf(c *Combatant) []*Combatant {
	return append([]*Combatant(nil), b.parties[1-b.partyOf(c)]...)
}

// check reports the first wiped party.
func (b *Battle) check() RoundOutcome {
	for i, p := range b.parties {
		if len(living(p)) == 0 {
			return PartyWiped(i)
		}
	}
	return Continuing
}

// DoRound plays one round: every living combatant, in initiative order, ticks
// its status effects, plans and executes a move. The round stops as soon as a
// party is wiped.
//
// Postcondition: returns PartyWiped for the first wiped party, else Continuing.
func (b *Battle) DoRound(ctx context.Context) (RoundOutcome, error) {
	b.round++
	log := b.env.Logger.With(zap.Int("round", b.round))
	log.Debug("round started")

	for _, c := range b.Initiative() {
		if !c.IsAlive() {
			continue
		}
		skip, err := b.tickEffects(ctx, c)
		if err != nil {
			return Continuing, err
		}
		if out := b.check(); out.Over {
			log.Info("party wiped", zap.Int("party", out.Wiped))
			return out, nil
		}
		if skip || !c.IsAlive() {
			continue
		}

		plan, err := c.Controller.PlanAttack(ctx, b.env, c, b.enemiesOf(c))
		if err != nil {
			return Continuing, fmt.Errorf("planning for %s: %w", c.Lang.DisplayName, err)
		}
		if plan.Skip() {
			log.Debug("turn skipped", zap.String("combatant", c.Lang.DisplayName))
			continue
		}
		if err := b.env.Sink.Emit(ctx, SeparatorLine); err != nil {
			return Continuing, err
		}
		if err := b.DoMove(ctx, c, plan); err != nil {
			return Continuing, err
		}
		if out := b.check(); out.Over {
			log.Info("party wiped", zap.Int("party", out.Wiped))
			return out, nil
		}
	}
	log.Debug("round finished")
	return b.check(), nil
}

// DoMove executes plan for c and then waits for the move delay.
func (b *Battle) DoMove(ctx context.Context, c *Combatant, plan Plan) error {
	outcome, err := plan.Action.Execute(ctx, &b.env.Env, c, plan.Target)
	if err != nil {
		return fmt.Errorf("executing %s: %w", plan.Action.ID, err)
	}
	b.env.Logger.Debug("move",
		zap.String("combatant", c.Lang.DisplayName),
		zap.String("action", plan.Action.ID),
		zap.String("target", plan.Target.Lang.DisplayName),
		zap.Stringer("outcome", outcome),
	)
	return host.Sleep(ctx, b.env.MoveDelay)
}

// tickEffects ticks each active effect on c and drops the expired ones.
// It reports whether any ticking effect costs c its turn.
func (b *Battle) tickEffects(ctx context.Context, c *Combatant) (skip bool, err error) {
	kept := c.effects[:0]
	for _, a := range c.effects {
		expired, err := a.Tick(ctx, &b.env.Env, c)
		if err != nil {
			return false, err
		}
		if a.Effect.SkipsTurn {
			skip = true
		}
		if !expired {
			kept = append(kept, a)
		}
	}
	c.effects = kept
	return skip, nil
}

// Run announces every combatant, then plays rounds until a party is wiped
// or MaxRounds is reached, and narrates the result.
func (b *Battle) Run(ctx context.Context) (Result, error) {
	if err := b.env.Sink.Emit(ctx, IntroLine); err != nil {
		return Result{}, err
	}
	if err := b.announce(ctx, b.all()); err != nil {
		return Result{}, err
	}
	for b.MaxRounds == 0 || b.round < b.MaxRounds {
		out, err := b.DoRound(ctx)
		if err != nil {
			return Result{Winner: -1, Loser: -1, Rounds: b.round}, err
		}
		if out.Over {
			res := Result{Winner: 1 - out.Wiped, Loser: out.Wiped, Rounds: b.round}
			return res, b.narrateResult(ctx, res)
		}
	}
	b.env.Logger.Info("round cap reached", zap.Int("rounds", b.round))
	return Result{Winner: -1, Loser: -1, Rounds: b.round}, b.env.Sink.Emit(ctx, StalemateLine)
}

func (b *Battle) narrateResult(ctx context.Context, res Result) error {
	if err := b.env.Sink.Emit(ctx, SeparatorLine); err != nil {
		return err
	}
	for _, c := range living(b.parties[res.Winner]) {
		line, err := b.env.Grammar.Format("{Victor} {victor.stands} victorious!", grammar.Participants{"victor": c.Lang})
		if err != nil {
			return err
		}
		if err := b.env.Sink.Emit(ctx, line); err != nil {
			return err
		}
	}
	return b.env.Sink.Emit(ctx, OutroLine)
}
