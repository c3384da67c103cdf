package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/preset"
	"github.com/Iktahana/illusions-sub003/internal/rules"
)

func newTestREPL(t *testing.T) *REPL {
	t.Helper()
	runner := lint.NewRunner(nil)
	rules.RegisterAll(runner)
	mode, ok := preset.Lookup("standard")
	require.True(t, ok)
	preset.Apply(runner, mode)

	r, err := New(&Config{Runner: runner, Mode: mode})
	require.NoError(t, err)
	return r
}

func TestNewRequiresRunner(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
}

func TestCommandForDispatch(t *testing.T) {
	r := newTestREPL(t)

	tests := []struct {
		line    string
		command string
		ok      bool
	}{
		{"help", "help", true},
		{":help", "help", true},
		{"preset novel", "preset", true},
		{":rules", "rules", true},
		// A sentence starting with a command word is manuscript text.
		{"help me write a novel about trains", "", false},
		{"これは原稿です。", "", false},
		{"unknowncmd", "", false},
	}
	for _, tt := range tests {
		name, _, ok := r.commandFor(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		if tt.ok {
			assert.Equal(t, tt.command, name, "line %q", tt.line)
		}
	}
}

func TestCmdPresetSwitches(t *testing.T) {
	r := newTestREPL(t)

	require.NoError(t, r.cmdPreset([]string{"novel"}))
	assert.Equal(t, "novel", r.mode.ID)

	cfg, ok := r.runner.GetConfig("kanji-numeral")
	require.True(t, ok)
	assert.Equal(t, "vertical", cfg.StringOption("direction", ""))

	assert.Error(t, r.cmdPreset([]string{"nope"}))
	assert.Error(t, r.cmdPreset(nil))
	assert.Equal(t, "novel", r.mode.ID, "failed switch keeps the mode")
}

func TestCmdHistoryDisabled(t *testing.T) {
	r := newTestREPL(t)
	assert.Error(t, r.cmdHistory(nil))
}
