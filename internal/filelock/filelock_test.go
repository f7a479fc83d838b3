package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	require.NoError(t, AtomicWrite(path, []byte("first")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrites replace the whole file.
	require.NoError(t, AtomicWrite(path, []byte("second")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteMissingDir(t *testing.T) {
	err := AtomicWrite(filepath.Join(t.TempDir(), "missing", "index.html"), []byte("x"))
	assert.Error(t, err)
}

func TestRunLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first := NewRunLock(path)
	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)

	defer func() {
		require.NoError(t, first.Unlock())
	}()

	// A second lock on the same file must not be acquirable.
	second := NewRunLock(path)
	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired)
}
