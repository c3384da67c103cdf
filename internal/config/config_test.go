package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.Preset)
	assert.Equal(t, 60, cfg.CooldownSeconds)
	assert.False(t, cfg.Validate)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosei.yaml")
	data := `preset: novel
vertical: true
validate: true
cooldown_seconds: 120
history_path: /tmp/kosei.db
rules:
  long-sentence:
    severity: error
    options:
      maxRunes: 120
  paragraph-indent:
    enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "novel", cfg.Preset)
	assert.True(t, cfg.Vertical)
	assert.True(t, cfg.Validate)
	assert.Equal(t, 120, cfg.CooldownSeconds)
	assert.Equal(t, "/tmp/kosei.db", cfg.HistoryPath)

	require.Contains(t, cfg.Rules, "long-sentence")
	require.NotNil(t, cfg.Rules["long-sentence"].Severity)
	assert.Equal(t, "error", *cfg.Rules["long-sentence"].Severity)
	require.Contains(t, cfg.Rules, "paragraph-indent")
	require.NotNil(t, cfg.Rules["paragraph-indent"].Enabled)
	assert.False(t, *cfg.Rules["paragraph-indent"].Enabled)
}

func TestLoadRejectsUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosei.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: typo\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestLoadRejectsBadSeverity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosei.yaml")
	data := "rules:\n  long-sentence:\n    severity: fatal\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadCooldown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosei.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cooldown_seconds: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cooldown_seconds")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosei.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: novel\n"), 0o644))

	t.Setenv("KOSEI_PRESET", "web")
	t.Setenv("KOSEI_VALIDATE", "true")
	t.Setenv("KOSEI_COOLDOWN_SECONDS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.Preset)
	assert.True(t, cfg.Validate)
	assert.Equal(t, 30, cfg.CooldownSeconds)
}

func TestEnvRejectsBadValues(t *testing.T) {
	t.Setenv("KOSEI_COOLDOWN_SECONDS", "soon")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KOSEI_COOLDOWN_SECONDS")
}

func TestOverridesConversion(t *testing.T) {
	sev := "info"
	enabled := false
	cfg := Config{Rules: map[string]RuleOverride{
		"digit-grouping": {
			Enabled:  &enabled,
			Severity: &sev,
			Options:  map[string]any{"minDigits": 6},
		},
	}}

	ov := cfg.Overrides()
	require.Contains(t, ov, "digit-grouping")
	require.NotNil(t, ov["digit-grouping"].Severity)
	assert.Equal(t, lint.SeverityInfo, *ov["digit-grouping"].Severity)
	require.NotNil(t, ov["digit-grouping"].Enabled)
	assert.False(t, *ov["digit-grouping"].Enabled)
	assert.Equal(t, 6, ov["digit-grouping"].Options["minDigits"])

	assert.Nil(t, Config{}.Overrides())
}
