// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SKIRMISH_BATTLE_SEED.
const EnvPrefix = "SKIRMISH"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Interactive play keeps
	// stdout for the battle text.
	Output string `mapstructure:"output"`
}

// BattleConfig holds battle rule settings.
type BattleConfig struct {
	// DefeatQuorum is how many defeated members break a roster.
	DefeatQuorum int `mapstructure:"defeat_quorum"`
	// SkipDefeatedTargets makes opponents choose only among living allies.
	SkipDefeatedTargets bool `mapstructure:"skip_defeated_targets"`
	// Seed makes every draw reproducible. Zero draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig locates the scenario and any extra definitions.
type ContentConfig struct {
	// Scenario is a scenario YAML file. Empty uses the built-in scenario.
	Scenario string `mapstructure:"scenario"`
	// SpellsDir optionally holds extra spell YAML files the scenario may reference.
	SpellsDir string `mapstructure:"spells_dir"`
	// ItemsDir optionally holds extra item YAML files the scenario may reference.
	ItemsDir string `mapstructure:"items_dir"`
}

// ScriptingConfig holds Lua hook settings.
type ScriptingConfig struct {
	// HookDir holds *.lua hook scripts. Empty disables scripting.
	HookDir string `mapstructure:"hook_dir"`
	// InstructionLimit caps opcodes per hook call. Zero uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Battle.DefeatQuorum < 1 {
		errs = append(errs, fmt.Sprintf("battle.defeat_quorum must be >= 1, got %d", c.Battle.DefeatQuorum))
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
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

// NewViper returns a Viper instance holding the defaults and reading
// SKIRMISH_-prefixed environment overrides. Callers may bind flags to it
// before handing it to LoadFromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
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
// Precondition: v must be non-nil.
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("battle.defeat_quorum", 2)
	v.SetDefault("battle.skip_defeated_targets", false)
	v.SetDefault("battle.seed", 0)

	v.SetDefault("content.scenario", "")
	v.SetDefault("content.spells_dir", "")
	v.SetDefault("content.items_dir", "")

	v.SetDefault("scripting.hook_dir", "")
	v.SetDefault("scripting.instruction_limit", 0)
}
