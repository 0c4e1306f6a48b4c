package repositories

import (
	"context"

	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IssuedItemRepository struct {
	DB *pgxpool.Pool
}

func NewIssuedItemRepository(db *pgxpool.Pool) *IssuedItemRepository {
	return &IssuedItemRepository{DB: db}
}

// ListByEmpNo returns the employee's items ordered by category and slot.
// Returns pgx.ErrNoRows for an unknown employee.
func (r *IssuedItemRepository) ListByEmpNo(ctx context.Context, empNo string) ([]*models.IssuedItem, error) {
	var empID int
	if err := r.DB.QueryRow(ctx, `SELECT id FROM employees WHERE emp_no = $1`, empNo).Scan(&empID); err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT item_id, emp_id, category, slot_index, COALESCE(size, ''),
		       COALESCE(item_code, ''), COALESCE(item_condition, ''),
		       COALESCE(TO_CHAR(issue_date, 'YYYY-MM-DD'), '')
		FROM emp_items
		WHERE emp_id = $1
		ORDER BY category, slot_index
	`, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.IssuedItem{}
	for rows.Next() {
		it := &models.IssuedItem{}
		if err := rows.Scan(&it.ItemID, &it.EmpID, &it.Category, &it.SlotIndex, &it.Size,
			&it.ItemCode, &it.ItemCondition, &it.IssueDate); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Replace deletes every item of the employee and inserts items in one transaction.
// Items must already be validated and normalized.
func (r *IssuedItemRepository) Replace(ctx context.Context, empNo string, items []models.IssuedItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var empID int
	if err := tx.QueryRow(ctx, `SELECT id FROM employees WHERE emp_no = $1 FOR UPDATE`, empNo).Scan(&empID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM emp_items WHERE emp_id = $1`, empID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO emp_items (emp_id, category, slot_index, size, item_code, item_condition, issue_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7::date)
		`, empID, it.Category, it.SlotIndex, textutil.NullIfBlank(it.Size),
			textutil.NullIfBlank(it.ItemCode), textutil.NullIfBlank(it.ItemCondition),
			textutil.NullIfBlank(it.IssueDate))
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
