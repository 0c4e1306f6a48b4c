package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_items.sql", "001_init.sql", "999_reset_all.sql", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755))

	files, err := ListMigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_items.sql"}, files)
}

func TestListMigrationFiles_MissingDir(t *testing.T) {
	_, err := ListMigrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListMigrationFiles_RepoMigrations(t *testing.T) {
	files, err := ListMigrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_initial_schema.sql", files[0])
}

func TestReset_NoScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- sql"), 0o644))

	err := NewMigrator(nil, dir).Reset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reset script")
}
