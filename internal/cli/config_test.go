package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/history"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "state", "history.db")
	require.NoError(t, os.WriteFile(path, []byte(
		"history_path: "+db+"\nhistory_capacity: 8\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, db, cfg.HistoryPath)
	assert.Equal(t, 8, cfg.HistoryCapacity)

	// The history directory is created on load.
	assert.DirExists(t, filepath.Dir(db))
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"history_path: "+filepath.Join(dir, "h.db")+"\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, history.DefaultCapacity, cfg.HistoryCapacity)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("history_capacity: [\n"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		path := filepath.Join(dir, "zero.yaml")
		require.NoError(t, os.WriteFile(path, []byte("history_capacity: 0\n"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
