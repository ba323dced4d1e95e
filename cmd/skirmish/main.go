// Package main provides the skirmish binary: it loads the content catalog,
// conjures a party of enemies and plays one battle against the player in a
// terminal UI or on plain stdin/stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/content"
	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/catalog"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grammar"
	"github.com/cory-johannsen/skirmish/internal/game/message"
	"github.com/cory-johannsen/skirmish/internal/host"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and SKIRMISH_* environment")
	contentDir := flag.String("content", "", "directory of catalog YAML files; overrides content.dir")
	plain := flag.Bool("plain", false, "use line-based stdin/stdout instead of the terminal UI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *plain {
		cfg.UI.Mode = "plain"
	}

	logger, err := observability.NewLogger(observability.LoggingFor(cfg))
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, host.ErrClosed) {
		logger.Error("battle failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	var src dice.Source
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	src = dice.NewLoggedSource(src, logger)

	var fsys fs.FS = content.FS
	if cfg.Content.Dir != "" {
		fsys = os.DirFS(cfg.Content.Dir)
	}
	cat, err := catalog.Load(ctx, fsys, catalog.Options{
		Rand:        src,
		Logger:      logger,
		ScriptLimit: cfg.Battle.ScriptLimit,
	})
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	defer cat.Close()

	player, err := cat.NewPlayer(combat.Player{})
	if err != nil {
		return fmt.Errorf("building player: %w", err)
	}
	enemies, err := cat.Enemies.Conjure(cfg.Battle.MinEnemies, cfg.Battle.MaxEnemies)
	if err != nil {
		return fmt.Errorf("conjuring enemies: %w", err)
	}
	logger.Info("battle ready",
		zap.String("seed", seedLabel(cfg.Battle.Seed)),
		zap.Int("enemies", len(enemies)),
		zap.Duration("elapsed", time.Since(start)),
	)

	joins, err := message.NewPool(combat.DefaultJoinMessages, src)
	if err != nil {
		return err
	}
	formatter := grammar.NewFormatter(logger)

	play := func(ctx context.Context, sink host.Sink, prompter host.Prompter) error {
		env := &combat.Env{
			Env: action.Env{
				Sink:    host.Paced(sink, cfg.Battle.LineDelay),
				Rand:    src,
				Grammar: formatter,
				Logger:  logger,
			},
			Prompter:  prompter,
			MoveDelay: cfg.Battle.MoveDelay,
		}
		battle, err := combat.NewBattle(env, joins, []*combat.Combatant{player}, enemies)
		if err != nil {
			return err
		}
		battle.MaxRounds = cfg.Battle.MaxRounds

		gear, err := formatter.Format("{Hero} {hero.is} carrying "+player.Inventory.Summary()+".",
			grammar.Participants{"hero": player.Lang})
		if err != nil {
			return err
		}
		if err := env.Sink.Emit(ctx, gear); err != nil {
			return err
		}

		res, err := battle.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("battle finished",
			zap.Int("winner", res.Winner),
			zap.Int("rounds", res.Rounds),
		)
		return nil
	}

	if cfg.UI.Mode == "plain" {
		console := host.NewConsole(os.Stdin, os.Stdout, cfg.UI.Color)
		return play(ctx, console, console)
	}
	ch := host.NewChannel(64)
	return tui.Run(ctx, ch, func(ctx context.Context) error {
		return play(ctx, ch, ch)
	})
}

func seedLabel(seed int64) string {
	if seed == 0 {
		return "crypto"
	}
	return fmt.Sprint(seed)
}
