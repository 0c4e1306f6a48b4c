package services

import (
	"errors"
	"fmt"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/metrics"
	"cleanguard-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// Error kinds. Handlers map them to 404, 400, 409, 401 and 502.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("dependency unavailable")
)

// Error carries a user-facing message and one of the kinds above
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFoundf(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func unauthorizedf(format string, args ...interface{}) error {
	return &Error{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func unavailablef(format string, args ...interface{}) error {
	return &Error{Kind: ErrUnavailable, Message: fmt.Sprintf(format, args...)}
}

// classify turns repository and allocation errors into service errors.
// notFound is the message used for pgx.ErrNoRows, duplicate for unique violations.
// Unknown errors pass through unchanged.
func classify(err error, notFound, duplicate string) error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundf("%s", notFound)
	}

	var allocErr *lockers.AllocationError
	if errors.As(err, &allocErr) {
		switch {
		case errors.Is(err, lockers.ErrLockerOccupied):
			metrics.LockerConflicts.WithLabelValues("occupied").Inc()
			return conflictf("%s", allocErr.Error())
		case errors.Is(err, lockers.ErrLockerNotFound):
			metrics.LockerConflicts.WithLabelValues("not_found").Inc()
		case errors.Is(err, lockers.ErrLockerKindMismatch):
			metrics.LockerConflicts.WithLabelValues("kind_mismatch").Inc()
		case errors.Is(err, lockers.ErrDuplicateLocker):
			metrics.LockerConflicts.WithLabelValues("duplicate").Inc()
		}
		return validationf("%s", allocErr.Error())
	}

	if repositories.IsLockFailure(err) {
		metrics.LockerConflicts.WithLabelValues("lock_failure").Inc()
		return conflictf("locker is being changed by another request, please retry")
	}

	if errors.Is(err, repositories.ErrResignedWithLockers) {
		return validationf("%s", err.Error())
	}

	if errors.Is(err, repositories.ErrDuplicate) || repositories.IsUniqueViolation(err) {
		return conflictf("%s", duplicate)
	}

	var inUse *repositories.ErrProcessInUse
	if errors.As(err, &inUse) {
		return conflictf("%s", inUse.Error())
	}

	var occupied *repositories.ErrOccupiedLockerRemoval
	if errors.As(err, &occupied) {
		return conflictf("%s", occupied.Error())
	}

	return err
}
