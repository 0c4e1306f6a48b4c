package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "migrations", cfg.Server.MigrationsDir)
	assert.Equal(t, 60, cfg.Lockers.PerKind)
	assert.Equal(t, 10, cfg.Items.DefaultLimit)
	assert.Equal(t, 7, cfg.Backup.RetentionDays)
	assert.Equal(t, "Backup", cfg.Backup.Dir)
	assert.False(t, cfg.Backup.S3Enabled())
}

func TestLoadFile_YAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
lockers:
  per_kind: 30
backup:
  s3:
    bucket: cleanguard-backups
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BACKUP_S3_ACCESS_KEY", "ak")
	t.Setenv("BACKUP_S3_SECRET_KEY", "sk")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Lockers.PerKind)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.True(t, cfg.Backup.S3Enabled())
}

func TestDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "postgres"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "cleanguard"

	assert.Equal(t, "postgres://postgres:pw@localhost:5432/cleanguard", cfg.DSN())
}
