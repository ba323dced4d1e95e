// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the log destination: "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// BattleConfig holds encounter and pacing settings.
type BattleConfig struct {
	// Seed seeds the random source; 0 uses a crypto-backed source.
	Seed int64 `mapstructure:"seed"`
	// MinEnemies and MaxEnemies bound the conjured enemy count.
	MinEnemies int `mapstructure:"min_enemies"`
	MaxEnemies int `mapstructure:"max_enemies"`
	// LineDelay is the pause after each narration line.
	LineDelay time.Duration `mapstructure:"line_delay"`
	// MoveDelay is the pause after each executed move.
	MoveDelay time.Duration `mapstructure:"move_delay"`
	// MaxRounds caps the battle length; 0 means unlimited.
	MaxRounds int `mapstructure:"max_rounds"`
	// ScriptLimit is the Lua instruction limit per hook call; 0 uses the default.
	ScriptLimit int `mapstructure:"script_limit"`
}

// ContentConfig locates the catalog.
type ContentConfig struct {
	// Dir is a directory of catalog YAML files; empty uses the embedded catalog.
	Dir string `mapstructure:"dir"`
}

// UIConfig selects the host.
type UIConfig struct {
	// Mode is "tui" for the full-screen terminal UI or "plain" for line-based IO.
	Mode string `mapstructure:"mode"`
	// Color enables ANSI colour in plain mode.
	Color bool `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Battle  BattleConfig  `mapstructure:"battle"`
	Content ContentConfig `mapstructure:"content"`
	UI      UIConfig      `mapstructure:"ui"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return fmt.Errorf("logging.output must not be empty")
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.MinEnemies < 1 {
		errs = append(errs, fmt.Sprintf("battle.min_enemies must be >= 1, got %d", b.MinEnemies))
	}
	if b.MaxEnemies < b.MinEnemies {
		errs = append(errs, "battle.max_enemies must not be less than battle.min_enemies")
	}
	if b.LineDelay < 0 {
		errs = append(errs, "battle.line_delay must not be negative")
	}
	if b.MoveDelay < 0 {
		errs = append(errs, "battle.move_delay must not be negative")
	}
	if b.MaxRounds < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_rounds must be >= 0, got %d", b.MaxRounds))
	}
	if b.ScriptLimit < 0 {
		errs = append(errs, fmt.Sprintf("battle.script_limit must be >= 0, got %d", b.ScriptLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateUI(u UIConfig) error {
	validModes := map[string]bool{"tui": true, "plain": true}
	if !validModes[u.Mode] {
		return fmt.Errorf("ui.mode must be one of [tui, plain], got %q", u.Mode)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.min_enemies", 1)
	v.SetDefault("battle.max_enemies", 3)
	v.SetDefault("battle.line_delay", "50ms")
	v.SetDefault("battle.move_delay", "500ms")
	v.SetDefault("battle.max_rounds", 0)
	v.SetDefault("battle.script_limit", 0)

	v.SetDefault("content.dir", "")

	v.SetDefault("ui.mode", "tui")
	v.SetDefault("ui.color", true)
}
