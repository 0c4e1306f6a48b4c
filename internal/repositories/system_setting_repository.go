package repositories

import (
	"context"

	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, description, updated_at, COALESCE(updated_by_user_id, 0)
		FROM system_settings
		WHERE setting_key = $1
	`

	setting := &models.SystemSetting{}
	err := r.DB.QueryRow(ctx, query, key).Scan(
		&setting.ID,
		&setting.SettingKey,
		&setting.SettingValue,
		&setting.Description,
		&setting.UpdatedAt,
		&setting.UpdatedByUserID,
	)

	if err != nil {
		return nil, err
	}

	return setting, nil
}

func (r *SystemSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	return r.ListByPrefix(ctx, "")
}

// ListByPrefix returns settings whose key starts with prefix, e.g. "item_limit."
func (r *SystemSettingRepository) ListByPrefix(ctx context.Context, prefix string) ([]*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, description, updated_at, COALESCE(updated_by_user_id, 0)
		FROM system_settings
		WHERE starts_with(setting_key, $1)
		ORDER BY setting_key
	`

	rows, err := r.DB.Query(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []*models.SystemSetting{}
	for rows.Next() {
		setting := &models.SystemSetting{}
		err := rows.Scan(
			&setting.ID,
			&setting.SettingKey,
			&setting.SettingValue,
			&setting.Description,
			&setting.UpdatedAt,
			&setting.UpdatedByUserID,
		)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

// Update changes an existing setting. Returns pgx.ErrNoRows for an unknown key.
func (r *SystemSettingRepository) Update(ctx context.Context, key string, value string, userID int) error {
	query := `
		UPDATE system_settings
		SET setting_value = $1, updated_at = CURRENT_TIMESTAMP, updated_by_user_id = NULLIF($2, 0)
		WHERE setting_key = $3
	`

	tag, err := r.DB.Exec(ctx, query, value, userID, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Upsert creates a new setting or updates an existing one
func (r *SystemSettingRepository) Upsert(ctx context.Context, key string, value string, description string, userID int) error {
	query := `
		INSERT INTO system_settings (setting_key, setting_value, description, updated_at, updated_by_user_id)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, NULLIF($4, 0))
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = $2, description = $3, updated_at = CURRENT_TIMESTAMP, updated_by_user_id = NULLIF($4, 0)
	`

	_, err := r.DB.Exec(ctx, query, key, value, description, userID)
	return err
}
