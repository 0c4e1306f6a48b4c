package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFileName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 14, 3, 9, 0, timeutil.CST)
	name := BackupFileName(ts)
	assert.Equal(t, "Backup_20240501_140309.sql", name)

	parsed, ok := ParseBackupTime(name)
	require.True(t, ok)
	assert.True(t, parsed.Equal(ts))

	for _, bad := range []string{"notes.txt", "Backup_2024.sql", "Backup_20240501_140309.sql.gz"} {
		_, ok := ParseBackupTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestExpiredBackups(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, timeutil.CST)
	names := []string{
		"Backup_20240501_120000.sql",
		"Backup_20240503_115959.sql",
		"Backup_20240503_120001.sql",
		"Backup_20240509_000000.sql",
		"readme.md",
	}
	got := ExpiredBackups(names, now, 7*24*time.Hour)
	assert.Equal(t, []string{"Backup_20240501_120000.sql", "Backup_20240503_115959.sql"}, got)
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Backup_20240501_120000.sql", "Backup_20240502_080000.sql", "other.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- dump"), 0o644))
	}

	cfg := &config.Config{}
	cfg.Backup.Dir = dir
	svc := NewBackupService(cfg, nil, nil)

	files, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Backup_20240502_080000.sql", files[0].Name)
	assert.Equal(t, "2024-05-02 08:00:00", files[0].CreatedAt)
	assert.Equal(t, int64(7), files[0].SizeBytes)
}

func TestListBackups_MissingDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "missing")
	files, err := NewBackupService(cfg, nil, nil).ListBackups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}
