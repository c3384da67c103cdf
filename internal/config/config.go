// Package config loads the host configuration for the correction
// engine: preset choice, per-rule overrides, and model settings.
//
// Configuration is layered lowest-to-highest: built-in defaults, the
// YAML config file, then KOSEI_* environment variables. CLI flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/preset"
)

// DefaultFileName is the config file looked up in the user's home
// directory when no explicit path is given.
const DefaultFileName = ".kosei.yaml"

// Config is the persisted host configuration.
type Config struct {
	// Preset selects the base correction mode.
	// Default: "standard"
	Preset string `yaml:"preset"`

	// Vertical sets the writing direction for direction-sensitive rules.
	// Default: false (horizontal)
	Vertical bool `yaml:"vertical"`

	// Validate enables the LLM validation pass over flagged issues.
	// Default: false
	Validate bool `yaml:"validate"`

	// ModelID overrides the validation model. Empty means the built-in
	// default (or KOSEI_MODEL).
	ModelID string `yaml:"model"`

	// CooldownSeconds is how long a loaded model stays resident after
	// the last validation request before it is unloaded.
	// Default: 60, Range: 1-3600
	CooldownSeconds int `yaml:"cooldown_seconds"`

	// HistoryPath is the SQLite database recording run summaries.
	// Empty disables history.
	HistoryPath string `yaml:"history_path"`

	// Rules holds per-rule overrides applied on top of the preset.
	Rules map[string]RuleOverride `yaml:"rules"`
}

// RuleOverride adjusts one rule's configuration. Nil fields keep the
// preset's value.
type RuleOverride struct {
	Enabled           *bool          `yaml:"enabled,omitempty"`
	Severity          *string        `yaml:"severity,omitempty"`
	SkipDialogue      *bool          `yaml:"skip_dialogue,omitempty"`
	SkipLLMValidation *bool          `yaml:"skip_llm_validation,omitempty"`
	Options           map[string]any `yaml:"options,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Preset:          "standard",
		CooldownSeconds: 60,
	}
}

// DefaultPath returns the per-user config file path, or "" when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the config file at path, layering it over the defaults
// and then applying environment overrides. A missing file is not an
// error; the defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Check(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Check reports whether the configuration has valid values.
func (c Config) Check() error {
	if _, ok := preset.Lookup(c.Preset); !ok {
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	if c.CooldownSeconds < 1 || c.CooldownSeconds > 3600 {
		return fmt.Errorf("cooldown_seconds must be between 1 and 3600 (got %d)", c.CooldownSeconds)
	}
	for id, ov := range c.Rules {
		if ov.Severity == nil {
			continue
		}
		if _, err := lint.ParseSeverity(*ov.Severity); err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
	}
	return nil
}

// Overrides converts the per-rule overrides into the form the preset
// layer applies. Severity strings were validated by Check.
func (c Config) Overrides() map[string]preset.Override {
	if len(c.Rules) == 0 {
		return nil
	}
	out := make(map[string]preset.Override, len(c.Rules))
	for id, ov := range c.Rules {
		po := preset.Override{
			Enabled:           ov.Enabled,
			SkipDialogue:      ov.SkipDialogue,
			SkipLLMValidation: ov.SkipLLMValidation,
			Options:           ov.Options,
		}
		if ov.Severity != nil {
			if sev, err := lint.ParseSeverity(*ov.Severity); err == nil {
				po.Severity = &sev
			}
		}
		out[id] = po
	}
	return out
}

// applyEnv overlays KOSEI_* environment variables onto cfg.
//
//   - KOSEI_PRESET: base correction mode
//   - KOSEI_VERTICAL: vertical writing direction
//   - KOSEI_VALIDATE: enable LLM validation
//   - KOSEI_COOLDOWN_SECONDS: model cooldown before unload
//   - KOSEI_HISTORY_PATH: run history database path
//
// KOSEI_MODEL is read by the model package itself.
func applyEnv(cfg *Config) error {
	if err := parseEnvString("KOSEI_PRESET", &cfg.Preset); err != nil {
		return err
	}
	if err := parseEnvBool("KOSEI_VERTICAL", &cfg.Vertical); err != nil {
		return err
	}
	if err := parseEnvBool("KOSEI_VALIDATE", &cfg.Validate); err != nil {
		return err
	}
	if err := parseEnvInt("KOSEI_COOLDOWN_SECONDS", &cfg.CooldownSeconds); err != nil {
		return err
	}
	if err := parseEnvString("KOSEI_HISTORY_PATH", &cfg.HistoryPath); err != nil {
		return err
	}
	return nil
}

func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	*dest = value
	return nil
}
