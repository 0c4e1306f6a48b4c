package repositories

import (
	"context"

	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, role, is_active,
	COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleOperator
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role, is_active)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email))
}

// List returns all operators, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count is used on startup to decide whether the first admin must be created
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// Update updates an existing user. An empty PasswordHash keeps the stored one.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET name=$1, password_hash=COALESCE(NULLIF($2, ''), password_hash),
		 role=$3, is_active=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		u.Name, u.PasswordHash, u.Role, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetTOTPSecret stores the TOTP secret for a user (during setup, before verification)
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		secret, userID)
	return err
}

// EnableTOTP marks 2FA as enabled after verification
func (r *UserRepository) EnableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=true, updated_at=CURRENT_TIMESTAMP WHERE id=$1`,
		userID)
	return err
}

func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=false, totp_secret=NULL, updated_at=CURRENT_TIMESTAMP WHERE id=$1`,
		userID)
	return err
}
