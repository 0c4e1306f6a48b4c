package repositories

import (
	"context"
	"errors"
	"sort"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LockerRepository struct {
	DB *pgxpool.Pool
}

func NewLockerRepository(db *pgxpool.Pool) *LockerRepository {
	return &LockerRepository{DB: db}
}

// Seed inserts the standard lockers 01..perKind of every kind that are missing
func (r *LockerRepository) Seed(ctx context.Context, perKind int) (int64, error) {
	var ids, locations, types []string
	for kind, kindIDs := range lockers.SeedIDs(perKind) {
		for _, id := range kindIDs {
			ids = append(ids, id)
			locations = append(locations, kind.Location)
			types = append(types, kind.Type)
		}
	}

	tag, err := r.DB.Exec(ctx, `
		INSERT INTO lockers (locker_id, location, type)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[])
		ON CONFLICT (locker_id) DO NOTHING
	`, ids, locations, types)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// List returns lockers matching the filter with the active holder, if any
func (r *LockerRepository) List(ctx context.Context, f models.LockerFilter) ([]*models.Locker, error) {
	query := `
		SELECT l.locker_id, l.location, l.type, l.is_occupied, COALESCE(l.remark, ''), l.updated_at,
		       COALESCE(e.emp_no, ''), COALESCE(e.name, '')
		FROM lockers l
		LEFT JOIN employees e
		       ON e.status = 1
		      AND l.locker_id IN (e.locker_1f_clothes, e.locker_1f_shoe, e.locker_2f_clothes, e.locker_2f_shoe)
		WHERE ($1 = '' OR l.location = $1)
		  AND ($2 = '' OR l.type = $2)
		  AND (NOT $3 OR COALESCE(TRIM(l.remark), '') <> '')
		ORDER BY l.locker_id
	`

	rows, err := r.DB.Query(ctx, query, f.Location, f.Type, f.AbnormalOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*models.Locker{}
	for rows.Next() {
		l := &models.Locker{}
		if err := rows.Scan(&l.LockerID, &l.Location, &l.Type, &l.IsOccupied, &l.Remark, &l.UpdatedAt,
			&l.HolderNo, &l.HolderName); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// Available returns free locker ids of one kind in id order
func (r *LockerRepository) Available(ctx context.Context, location, lockerType string) ([]string, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT locker_id FROM lockers
		WHERE location = $1 AND type = $2 AND is_occupied = FALSE
		ORDER BY locker_id
	`, location, lockerType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Summary returns occupied/total counts grouped by kind
func (r *LockerRepository) Summary(ctx context.Context) ([]models.KindSummary, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT location, type,
		       COUNT(*) FILTER (WHERE is_occupied) AS occupied,
		       COUNT(*) AS total
		FROM lockers
		GROUP BY location, type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []models.KindSummary
	for rows.Next() {
		var k models.KindSummary
		if err := rows.Scan(&k.Location, &k.Type, &k.Occupied, &k.Total); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// States returns every locker's occupancy and remark for heat map aggregation
func (r *LockerRepository) States(ctx context.Context) ([]lockers.LockerState, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT locker_id, location, type, is_occupied, COALESCE(remark, '')
		FROM lockers
		ORDER BY locker_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []lockers.LockerState
	for rows.Next() {
		var s lockers.LockerState
		if err := rows.Scan(&s.LockerID, &s.Location, &s.Type, &s.IsOccupied, &s.Remark); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// UpdateRemark sets or clears the abnormal-condition note.
// Returns pgx.ErrNoRows for an unknown locker.
func (r *LockerRepository) UpdateRemark(ctx context.Context, lockerID string, remark *string) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE lockers SET remark = $1, updated_at = NOW() WHERE locker_id = $2
	`, remark, lockerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceAll rebuilds the locker list from the wanted ids per kind.
// Lockers missing from wanted are deleted unless occupied, in which case
// the whole import is rejected. Existing lockers keep their occupancy and remark.
func (r *LockerRepository) ReplaceAll(ctx context.Context, wanted map[models.LockerKind][]string) (*models.LockerImportResult, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT locker_id, is_occupied FROM lockers ORDER BY locker_id FOR UPDATE`)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var id string
		var occupied bool
		if err := rows.Scan(&id, &occupied); err != nil {
			rows.Close()
			return nil, err
		}
		existing[id] = occupied
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wantedSet := make(map[string]models.LockerKind)
	for kind, ids := range wanted {
		for _, id := range ids {
			wantedSet[id] = kind
		}
	}

	result := &models.LockerImportResult{Total: len(wantedSet)}
	var remove, occupiedRemoval []string
	for id, occupied := range existing {
		if _, ok := wantedSet[id]; ok {
			result.Kept++
			continue
		}
		if occupied {
			occupiedRemoval = append(occupiedRemoval, id)
		}
		remove = append(remove, id)
	}
	if len(occupiedRemoval) > 0 {
		sort.Strings(occupiedRemoval)
		return nil, &ErrOccupiedLockerRemoval{LockerIDs: occupiedRemoval}
	}

	if len(remove) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM lockers WHERE locker_id = ANY($1)`, remove); err != nil {
			return nil, err
		}
		result.Removed = len(remove)
	}

	for id, kind := range wantedSet {
		if _, ok := existing[id]; ok {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO lockers (locker_id, location, type) VALUES ($1, $2, $3)
		`, id, kind.Location, kind.Type); err != nil {
			return nil, err
		}
		result.Added++
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// txExecutor is the part of pgx.Tx the allocation helpers need
type txExecutor interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// lockRows takes row locks on every listed locker in locker_id order.
// Locking in one fixed order keeps crossing moves (A to B while B to A)
// from deadlocking; the second transaction waits and then sees the
// first one's result.
func lockRows(ctx context.Context, tx txExecutor, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	_, err := tx.Exec(ctx, `
		SELECT locker_id FROM lockers
		WHERE locker_id = ANY($1)
		ORDER BY locker_id
		FOR UPDATE
	`, sorted)
	return err
}

// lockLocker reads a locker row under FOR UPDATE inside tx.
// Returns nil, nil when the locker does not exist.
func lockLocker(ctx context.Context, tx txExecutor, lockerID string) (*lockers.LockerState, error) {
	s := &lockers.LockerState{}
	err := tx.QueryRow(ctx, `
		SELECT locker_id, location, type, is_occupied, COALESCE(remark, '')
		FROM lockers WHERE locker_id = $1
		FOR UPDATE
	`, lockerID).Scan(&s.LockerID, &s.Location, &s.Type, &s.IsOccupied, &s.Remark)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// releaseLockers marks lockers free inside tx. Unknown ids are ignored.
func releaseLockers(ctx context.Context, tx txExecutor, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := lockRows(ctx, tx, ids); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		UPDATE lockers SET is_occupied = FALSE, updated_at = NOW() WHERE locker_id = ANY($1)
	`, ids)
	return err
}

// applyPlan locks every locker the plan touches, then releases, validates
// and occupies them inside tx. Concurrent transactions touching the same
// locker serialize and the loser fails with lockers.ErrLockerOccupied.
func applyPlan(ctx context.Context, tx txExecutor, plan lockers.Plan) error {
	ids := append([]string(nil), plan.Release...)
	for _, slot := range plan.Occupy {
		ids = append(ids, slot.LockerID)
	}
	if err := lockRows(ctx, tx, ids); err != nil {
		return err
	}

	if len(plan.Release) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE lockers SET is_occupied = FALSE, updated_at = NOW() WHERE locker_id = ANY($1)
		`, plan.Release); err != nil {
			return err
		}
	}

	for _, slot := range plan.Occupy {
		state, err := lockLocker(ctx, tx, slot.LockerID)
		if err != nil {
			return err
		}
		if err := lockers.CheckSlot(slot, state); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE lockers SET is_occupied = TRUE, updated_at = NOW() WHERE locker_id = $1
		`, slot.LockerID); err != nil {
			return err
		}
	}
	return nil
}
