package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "kosei", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Record(context.Background(), Run{Preset: "standard"})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.StartedAt.IsZero())
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, Run{
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			Duration:   250 * time.Millisecond,
			Source:     "draft.txt",
			Preset:     "novel",
			Paragraphs: 10 + i,
			Issues:     i,
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 12, runs[0].Paragraphs)
	assert.Equal(t, 11, runs[1].Paragraphs)
	assert.Equal(t, 250*time.Millisecond, runs[0].Duration)
	assert.Equal(t, "novel", runs[0].Preset)
	assert.Equal(t, "draft.txt", runs[0].Source)
}

func TestRecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSummarize(t *testing.T) {
	var run Run
	run.Summarize([]lint.Issue{
		{Severity: lint.SeverityError},
		{Severity: lint.SeverityError},
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityInfo},
	})
	assert.Equal(t, 4, run.Issues)
	assert.Equal(t, 2, run.Errors)
	assert.Equal(t, 1, run.Warnings)
	assert.Equal(t, 1, run.Infos)

	run.Summarize(nil)
	assert.Zero(t, run.Issues)
	assert.Zero(t, run.Errors)
}
