package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := newTestStore(t)

	first := Run{
		RunID:        uuid.NewString(),
		StartedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		RootPath:     "/srv/data",
		BasePath:     "/srv",
		Mode:         "filesystem",
		DirsIndexed:  12,
		FilesWritten: 84,
		Duration:     3 * time.Second,
	}
	second := Run{
		RunID:     uuid.NewString(),
		StartedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		RootPath:  "/srv/data",
		BasePath:  "/srv",
		Mode:      "manifest",
		Skipped:   1,
		DryRun:    true,
	}

	require.NoError(t, store.RecordRun(first))
	require.NoError(t, store.RecordRun(second))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, "manifest", runs[0].Mode)
	assert.True(t, runs[0].DryRun)

	assert.Equal(t, first.RunID, runs[1].RunID)
	assert.Equal(t, int64(12), runs[1].DirsIndexed)
	assert.Equal(t, int64(84), runs[1].FilesWritten)
	assert.Equal(t, 3*time.Second, runs[1].Duration)
}

func TestRecentRunsLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordRun(Run{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().Add(time.Duration(i) * time.Minute),
			RootPath:  "/srv/data",
			BasePath:  "/srv/data",
			Mode:      "filesystem",
		}))
	}

	runs, err := store.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRecentRunsEmpty(t *testing.T) {
	store := newTestStore(t)
	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
