package repositories

import (
	"context"
	"errors"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrResignedWithLockers is returned when an update would give lockers to a resigned employee
var ErrResignedWithLockers = errors.New("resigned employees cannot hold lockers; restore the employee first")

type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

const employeeColumns = `
	id, emp_no, name, COALESCE(pinyin, ''), COALESCE(process, ''),
	COALESCE(locker_1f_clothes, ''), COALESCE(locker_1f_shoe, ''),
	COALESCE(locker_2f_clothes, ''), COALESCE(locker_2f_shoe, ''),
	status, created_at, updated_at
`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(&e.ID, &e.EmpNo, &e.Name, &e.Pinyin, &e.Process,
		&e.Locker1FClothes, &e.Locker1FShoe, &e.Locker2FClothes, &e.Locker2FShoe,
		&e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Query lists employees whose emp_no, name, pinyin initials or process
// contain keyword. Active employees come first, then by name.
func (r *EmployeeRepository) Query(ctx context.Context, keyword string) ([]*models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE $1 = ''
		   OR emp_no ILIKE '%' || $1 || '%'
		   OR name ILIKE '%' || $1 || '%'
		   OR pinyin ILIKE '%' || $1 || '%'
		   OR process ILIKE '%' || $1 || '%'
		ORDER BY status DESC, name
	`

	rows, err := r.DB.Query(ctx, query, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []*models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) GetByEmpNo(ctx context.Context, empNo string) (*models.Employee, error) {
	return scanEmployee(r.DB.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE emp_no = $1`, empNo))
}

func getForUpdate(ctx context.Context, tx pgx.Tx, empNo string) (*models.Employee, error) {
	return scanEmployee(tx.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE emp_no = $1 FOR UPDATE`, empNo))
}

// Create inserts an active employee and occupies the requested lockers
// in one transaction. A duplicate emp_no surfaces as a unique violation.
func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	plan, err := lockers.BuildPlan(models.LockerAssignment{}, e.Assignment())
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := applyPlan(ctx, tx, plan); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO employees (emp_no, name, pinyin, process,
			locker_1f_clothes, locker_1f_shoe, locker_2f_clothes, locker_2f_shoe, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING id, status, created_at, updated_at
	`, e.EmpNo, e.Name, textutil.NullIfBlank(e.Pinyin), textutil.NullIfBlank(e.Process),
		textutil.NullIfBlank(e.Locker1FClothes), textutil.NullIfBlank(e.Locker1FShoe),
		textutil.NullIfBlank(e.Locker2FClothes), textutil.NullIfBlank(e.Locker2FShoe),
	).Scan(&e.ID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update rewrites an employee's details and moves their lockers.
// The employee row is locked for the duration, old lockers are released
// before the new ones are validated, so keeping a locker is always allowed.
// Returns the previous state.
func (r *EmployeeRepository) Update(ctx context.Context, empNo string, e *models.Employee) (*models.Employee, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	old, err := getForUpdate(ctx, tx, empNo)
	if err != nil {
		return nil, err
	}

	if !old.IsActive() && len(lockers.Held(e.Assignment())) > 0 {
		return nil, ErrResignedWithLockers
	}

	plan, err := lockers.BuildPlan(old.Assignment(), e.Assignment())
	if err != nil {
		return nil, err
	}
	if err := applyPlan(ctx, tx, plan); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE employees
		SET emp_no = $1, name = $2, pinyin = $3, process = $4,
		    locker_1f_clothes = $5, locker_1f_shoe = $6, locker_2f_clothes = $7, locker_2f_shoe = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING id, status, created_at, updated_at
	`, e.EmpNo, e.Name, textutil.NullIfBlank(e.Pinyin), textutil.NullIfBlank(e.Process),
		textutil.NullIfBlank(e.Locker1FClothes), textutil.NullIfBlank(e.Locker1FShoe),
		textutil.NullIfBlank(e.Locker2FClothes), textutil.NullIfBlank(e.Locker2FShoe),
		old.ID,
	).Scan(&e.ID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return old, nil
}

// Resign releases all lockers and marks the employee resigned.
// An already resigned employee is returned unchanged with changed=false.
func (r *EmployeeRepository) Resign(ctx context.Context, empNo string) (*models.Employee, bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	e, err := getForUpdate(ctx, tx, empNo)
	if err != nil {
		return nil, false, err
	}
	if !e.IsActive() {
		return e, false, nil
	}

	if err := releaseLockers(ctx, tx, lockers.Held(e.Assignment())); err != nil {
		return nil, false, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE employees
		SET status = 0, locker_1f_clothes = NULL, locker_1f_shoe = NULL,
		    locker_2f_clothes = NULL, locker_2f_shoe = NULL, updated_at = NOW()
		WHERE id = $1
	`, e.ID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// Restore reactivates a resigned employee without assigning lockers.
// An already active employee is returned with changed=false.
func (r *EmployeeRepository) Restore(ctx context.Context, empNo string) (*models.Employee, bool, error) {
	e, err := scanEmployee(r.DB.QueryRow(ctx, `
		UPDATE employees SET status = 1, updated_at = NOW()
		WHERE emp_no = $1 AND status = 0
		RETURNING `+employeeColumns, empNo))
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// Either unknown or already active
	e, err = r.GetByEmpNo(ctx, empNo)
	if err != nil {
		return nil, false, err
	}
	return e, false, nil
}

// Delete releases the employee's lockers and removes the row.
// Issued items are removed by the cascade.
func (r *EmployeeRepository) Delete(ctx context.Context, empNo string) (*models.Employee, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	e, err := getForUpdate(ctx, tx, empNo)
	if err != nil {
		return nil, err
	}

	if err := releaseLockers(ctx, tx, lockers.Held(e.Assignment())); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, e.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// ExportRow is an employee with the sizes of their first dust suit and safety shoes
type ExportRow struct {
	models.Employee
	DustSuitSize   string
	SafetyShoeSize string
}

// ListForExport returns every employee in roster order with first item sizes
func (r *EmployeeRepository) ListForExport(ctx context.Context) ([]*ExportRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT e.emp_no, e.name, COALESCE(e.process, ''),
		       COALESCE(e.locker_1f_clothes, ''), COALESCE(e.locker_1f_shoe, ''),
		       COALESCE(e.locker_2f_clothes, ''), COALESCE(e.locker_2f_shoe, ''),
		       e.status,
		       COALESCE(ds.size, ''), COALESCE(ss.size, '')
		FROM employees e
		LEFT JOIN emp_items ds ON ds.emp_id = e.id AND ds.category = 'dust_suit' AND ds.slot_index = 1
		LEFT JOIN emp_items ss ON ss.emp_id = e.id AND ss.category = 'safety_shoe' AND ss.slot_index = 1
		ORDER BY e.status DESC, e.emp_no
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*ExportRow{}
	for rows.Next() {
		row := &ExportRow{}
		if err := rows.Scan(&row.EmpNo, &row.Name, &row.Process,
			&row.Locker1FClothes, &row.Locker1FShoe, &row.Locker2FClothes, &row.Locker2FShoe,
			&row.Status, &row.DustSuitSize, &row.SafetyShoeSize); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
