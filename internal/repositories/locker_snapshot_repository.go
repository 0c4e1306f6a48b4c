package repositories

import (
	"context"

	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LockerSnapshotRepository struct {
	DB *pgxpool.Pool
}

func NewLockerSnapshotRepository(db *pgxpool.Pool) *LockerSnapshotRepository {
	return &LockerSnapshotRepository{DB: db}
}

// Capture aggregates the lockers table and stores one snapshot row
// in a single statement, so the counts are consistent with each other.
func (r *LockerSnapshotRepository) Capture(ctx context.Context, source string) (*models.LockerSnapshot, error) {
	s := &models.LockerSnapshot{}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO locker_snapshots (
			one_f_clothes_occupied, one_f_clothes_total,
			one_f_shoe_occupied, one_f_shoe_total,
			two_f_clothes_occupied, two_f_clothes_total,
			two_f_shoe_occupied, two_f_shoe_total,
			source
		)
		SELECT
			COUNT(*) FILTER (WHERE location = '1F' AND type = 'clothes' AND is_occupied),
			COUNT(*) FILTER (WHERE location = '1F' AND type = 'clothes'),
			COUNT(*) FILTER (WHERE location = '1F' AND type = 'shoe' AND is_occupied),
			COUNT(*) FILTER (WHERE location = '1F' AND type = 'shoe'),
			COUNT(*) FILTER (WHERE location = '2F' AND type = 'clothes' AND is_occupied),
			COUNT(*) FILTER (WHERE location = '2F' AND type = 'clothes'),
			COUNT(*) FILTER (WHERE location = '2F' AND type = 'shoe' AND is_occupied),
			COUNT(*) FILTER (WHERE location = '2F' AND type = 'shoe'),
			$1
		FROM lockers
		RETURNING snapshot_id, snapshot_time,
			one_f_clothes_occupied, one_f_clothes_total,
			one_f_shoe_occupied, one_f_shoe_total,
			two_f_clothes_occupied, two_f_clothes_total,
			two_f_shoe_occupied, two_f_shoe_total,
			COALESCE(source, '')
	`, source).Scan(&s.SnapshotID, &s.SnapshotTime,
		&s.OneFClothesOccupied, &s.OneFClothesTotal,
		&s.OneFShoeOccupied, &s.OneFShoeTotal,
		&s.TwoFClothesOccupied, &s.TwoFClothesTotal,
		&s.TwoFShoeOccupied, &s.TwoFShoeTotal,
		&s.Source)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the newest snapshots first
func (r *LockerSnapshotRepository) List(ctx context.Context, limit int) ([]*models.LockerSnapshot, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT snapshot_id, snapshot_time,
			one_f_clothes_occupied, one_f_clothes_total,
			one_f_shoe_occupied, one_f_shoe_total,
			two_f_clothes_occupied, two_f_clothes_total,
			two_f_shoe_occupied, two_f_shoe_total,
			COALESCE(source, '')
		FROM locker_snapshots
		ORDER BY snapshot_time DESC, snapshot_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []*models.LockerSnapshot{}
	for rows.Next() {
		s := &models.LockerSnapshot{}
		if err := rows.Scan(&s.SnapshotID, &s.SnapshotTime,
			&s.OneFClothesOccupied, &s.OneFClothesTotal,
			&s.OneFShoeOccupied, &s.OneFShoeTotal,
			&s.TwoFClothesOccupied, &s.TwoFClothesTotal,
			&s.TwoFShoeOccupied, &s.TwoFShoeTotal,
			&s.Source); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
