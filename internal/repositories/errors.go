package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a name clash is detected before the write
var ErrDuplicate = errors.New("already exists")

// ErrProcessInUse is returned when deleting a process still assigned to employees
type ErrProcessInUse struct {
	Name  string
	Count int
}

func (e *ErrProcessInUse) Error() string {
	return fmt.Sprintf("process %s is in use by %d employees", e.Name, e.Count)
}

// ErrOccupiedLockerRemoval is returned when a locker import would drop occupied lockers
type ErrOccupiedLockerRemoval struct {
	LockerIDs []string
}

func (e *ErrOccupiedLockerRemoval) Error() string {
	return fmt.Sprintf("cannot remove occupied lockers: %v", e.LockerIDs)
}

// IsLockFailure reports whether PostgreSQL aborted the transaction with a
// deadlock (40P01) or serialization failure (40001). Retrying may succeed.
func IsLockFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40P01" || pgErr.Code == "40001")
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
