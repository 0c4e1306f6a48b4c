package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cleanguard-backend/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Note: We read migrations from the filesystem at runtime
// instead of embedding them, to allow easier updates without recompiling

// Migrator handles database schema migrations
type Migrator struct {
	pool *pgxpool.Pool
	dir  string
}

// NewMigrator creates a new migration runner reading *.sql files from dir
func NewMigrator(pool *pgxpool.Pool, dir string) *Migrator {
	if dir == "" {
		dir = "migrations"
	}
	return &Migrator{
		pool: pool,
		dir:  dir,
	}
}

// RunMigrations executes all pending database migrations
//
// This function:
//  1. Creates a migrations tracking table if it doesn't exist
//  2. Reads all migration files from the migrations directory
//  3. Skips migrations that have already been run
//  4. Executes new migrations in alphabetical order, each in its own transaction
//  5. Records successful migrations in the tracking table
func (m *Migrator) RunMigrations(ctx context.Context) error {
	logger.InfoLog(ctx, "[Migrator] Starting database migrations from %s", m.dir)

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	appliedMigrations, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrationFiles, err := ListMigrationFiles(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrationsRun := 0
	for _, filename := range migrationFiles {
		if appliedMigrations[filename] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		logger.InfoLog(ctx, "[Migrator] Running: %s", filename)
		if err := m.apply(ctx, filename, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", filename, err)
		}

		migrationsRun++
	}

	if migrationsRun > 0 {
		logger.InfoLog(ctx, "[Migrator] Successfully ran %d new migration(s)", migrationsRun)
	} else {
		logger.InfoLog(ctx, "[Migrator] All migrations already applied")
	}

	return nil
}

// ListMigrationFiles returns the *.sql files in dir sorted by name.
// Files containing "reset" are destructive helpers and never run automatically.
func ListMigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if strings.Contains(name, "reset") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// Reset runs the destructive *reset*.sql scripts in dir, dropping every table.
// The next RunMigrations recreates the schema from scratch.
func (m *Migrator) Reset(ctx context.Context) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	ran := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") || !strings.Contains(name, "reset") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		logger.WarnLog(ctx, "[Migrator] Running reset script: %s", name)
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run %s: %w", name, err)
		}
		ran++
	}
	if ran == 0 {
		return fmt.Errorf("no reset script found in %s", m.dir)
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, filename, sql string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (filename) VALUES ($1) ON CONFLICT (filename) DO NOTHING`,
		filename,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := m.pool.Exec(ctx, query)
	return err
}

// getAppliedMigrations returns a set of all migrations that have been applied
func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.pool.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}

	return applied, rows.Err()
}
