package repositories

import (
	"context"
	"errors"

	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProcessRepository struct {
	DB *pgxpool.Pool
}

func NewProcessRepository(db *pgxpool.Pool) *ProcessRepository {
	return &ProcessRepository{DB: db}
}

// Names returns the dictionary in insertion order
func (r *ProcessRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT name FROM processes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// List returns every process with the number of employees assigned to it
func (r *ProcessRepository) List(ctx context.Context) ([]*models.Process, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.name, COUNT(e.id)
		FROM processes p
		LEFT JOIN employees e ON e.process = p.name
		GROUP BY p.id, p.name
		ORDER BY p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processes []*models.Process
	for rows.Next() {
		p := &models.Process{}
		if err := rows.Scan(&p.ID, &p.Name, &p.EmployeeCount); err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	return processes, rows.Err()
}

// Create adds a name. A duplicate surfaces as a unique violation.
func (r *ProcessRepository) Create(ctx context.Context, name string) (*models.Process, error) {
	p := &models.Process{Name: name}
	err := r.DB.QueryRow(ctx, `INSERT INTO processes (name) VALUES ($1) RETURNING id`, name).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateMissing inserts the names not yet present and returns how many were added
func (r *ProcessRepository) CreateMissing(ctx context.Context, names []string) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	added := 0
	for _, name := range names {
		tag, err := tx.Exec(ctx, `INSERT INTO processes (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return 0, err
		}
		added += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return added, nil
}

// Delete removes a process unless employees still use it.
// Returns pgx.ErrNoRows for an unknown name.
func (r *ProcessRepository) Delete(ctx context.Context, name string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(ctx, `SELECT id FROM processes WHERE name = $1 FOR UPDATE`, name).Scan(&id); err != nil {
		return err
	}

	var used int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE process = $1`, name).Scan(&used); err != nil {
		return err
	}
	if used > 0 {
		return &ErrProcessInUse{Name: name, Count: used}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM processes WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Rename changes the dictionary entry and every employee using it.
// Returns pgx.ErrNoRows when from is unknown and ErrDuplicate when
// another process already has the name, ignoring case. Returns the number of employees moved.
func (r *ProcessRepository) Rename(ctx context.Context, from, to string) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(ctx, `SELECT id FROM processes WHERE name = $1 FOR UPDATE`, from).Scan(&id); err != nil {
		return 0, err
	}

	var clash int
	err = tx.QueryRow(ctx, `SELECT id FROM processes WHERE LOWER(name) = LOWER($1) AND id <> $2`, to, id).Scan(&clash)
	if err == nil {
		return 0, ErrDuplicate
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE processes SET name = $1 WHERE id = $2`, to, id); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `UPDATE employees SET process = $1, updated_at = NOW() WHERE process = $2`, to, from)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
