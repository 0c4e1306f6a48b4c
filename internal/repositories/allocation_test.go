package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedStmt struct {
	sql  string
	args []interface{}
}

// fakeTx records statements and serves locker rows from memory
type fakeTx struct {
	lockers map[string]*lockers.LockerState
	stmts   []recordedStmt
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, recordedStmt{sql: strings.Join(strings.Fields(sql), " "), args: args})
	if strings.Contains(sql, "SET is_occupied = FALSE") {
		for _, id := range args[0].([]string) {
			if l, ok := f.lockers[id]; ok {
				l.IsOccupied = false
			}
		}
	}
	if strings.Contains(sql, "SET is_occupied = TRUE") {
		if l, ok := f.lockers[args[0].(string)]; ok {
			l.IsOccupied = true
		}
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	f.stmts = append(f.stmts, recordedStmt{sql: strings.Join(strings.Fields(sql), " "), args: args})
	return fakeRow{state: f.lockers[args[0].(string)]}
}

type fakeRow struct {
	state *lockers.LockerState
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.state == nil {
		return pgx.ErrNoRows
	}
	*dest[0].(*string) = r.state.LockerID
	*dest[1].(*string) = r.state.Location
	*dest[2].(*string) = r.state.Type
	*dest[3].(*bool) = r.state.IsOccupied
	*dest[4].(*string) = r.state.Remark
	return nil
}

func newFakeTx(states ...lockers.LockerState) *fakeTx {
	f := &fakeTx{lockers: make(map[string]*lockers.LockerState)}
	for i := range states {
		s := states[i]
		f.lockers[s.LockerID] = &s
	}
	return f
}

var clothes1F = models.LockerKind{Location: "1F", Type: "clothes"}

func TestApplyPlan_LocksAllRowsInOrderFirst(t *testing.T) {
	tx := newFakeTx(
		lockers.LockerState{LockerID: "1F-C-01", Location: "1F", Type: "clothes"},
		lockers.LockerState{LockerID: "1F-C-02", Location: "1F", Type: "clothes", IsOccupied: true},
	)
	plan := lockers.Plan{
		Release: []string{"1F-C-02"},
		Occupy:  []models.LockerSlot{{Kind: clothes1F, LockerID: "1F-C-01"}},
	}

	require.NoError(t, applyPlan(context.Background(), tx, plan))
	require.Len(t, tx.stmts, 4)

	assert.Contains(t, tx.stmts[0].sql, "ORDER BY locker_id FOR UPDATE")
	assert.Equal(t, []string{"1F-C-01", "1F-C-02"}, tx.stmts[0].args[0])
	assert.Contains(t, tx.stmts[1].sql, "SET is_occupied = FALSE")
	assert.Contains(t, tx.stmts[2].sql, "WHERE locker_id = $1 FOR UPDATE")
	assert.Contains(t, tx.stmts[3].sql, "SET is_occupied = TRUE")

	assert.True(t, tx.lockers["1F-C-01"].IsOccupied)
	assert.False(t, tx.lockers["1F-C-02"].IsOccupied)
}

func TestApplyPlan_OccupiedLockerStopsBeforeWrite(t *testing.T) {
	tx := newFakeTx(lockers.LockerState{LockerID: "1F-C-03", Location: "1F", Type: "clothes", IsOccupied: true})
	plan := lockers.Plan{Occupy: []models.LockerSlot{{Kind: clothes1F, LockerID: "1F-C-03"}}}

	err := applyPlan(context.Background(), tx, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lockers.ErrLockerOccupied))
	for _, s := range tx.stmts {
		assert.NotContains(t, s.sql, "SET is_occupied = TRUE")
	}
}

func TestApplyPlan_ReleasedLockerIsFreeForCheck(t *testing.T) {
	// An employee's own locker is released before it is checked again
	tx := newFakeTx(lockers.LockerState{LockerID: "1F-C-04", Location: "1F", Type: "clothes", IsOccupied: true})
	plan := lockers.Plan{
		Release: []string{"1F-C-04"},
		Occupy:  []models.LockerSlot{{Kind: clothes1F, LockerID: "1F-C-04"}},
	}

	require.NoError(t, applyPlan(context.Background(), tx, plan))
	assert.True(t, tx.lockers["1F-C-04"].IsOccupied)
}

func TestApplyPlan_MissingLocker(t *testing.T) {
	tx := newFakeTx()
	plan := lockers.Plan{Occupy: []models.LockerSlot{{Kind: clothes1F, LockerID: "1F-C-99"}}}

	err := applyPlan(context.Background(), tx, plan)
	assert.True(t, errors.Is(err, lockers.ErrLockerNotFound))
}

func TestReleaseLockers_LocksSortedBeforeUpdate(t *testing.T) {
	tx := newFakeTx(
		lockers.LockerState{LockerID: "2F-S-01", Location: "2F", Type: "shoe", IsOccupied: true},
		lockers.LockerState{LockerID: "1F-C-05", Location: "1F", Type: "clothes", IsOccupied: true},
	)

	require.NoError(t, releaseLockers(context.Background(), tx, []string{"2F-S-01", "1F-C-05"}))
	require.Len(t, tx.stmts, 2)
	assert.Equal(t, []string{"1F-C-05", "2F-S-01"}, tx.stmts[0].args[0])
	assert.Contains(t, tx.stmts[1].sql, "SET is_occupied = FALSE")
	assert.False(t, tx.lockers["2F-S-01"].IsOccupied)
	assert.False(t, tx.lockers["1F-C-05"].IsOccupied)
}

func TestApplyPlan_EmptyPlanTouchesNothing(t *testing.T) {
	tx := newFakeTx()
	require.NoError(t, applyPlan(context.Background(), tx, lockers.Plan{}))
	assert.Empty(t, tx.stmts)
}
