package lockers

import (
	"errors"
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan(t *testing.T) {
	tests := []struct {
		name        string
		from        models.LockerAssignment
		to          models.LockerAssignment
		wantRelease []string
		wantOccupy  []string
	}{
		{
			name:       "new employee",
			to:         models.LockerAssignment{Floor1Clothes: "1F-C-01", Floor2Shoe: "2F-S-07"},
			wantOccupy: []string{"1F-C-01", "2F-S-07"},
		},
		{
			name: "unchanged slots are left alone",
			from: models.LockerAssignment{Floor1Clothes: "1F-C-01", Floor1Shoe: "1F-S-01"},
			to:   models.LockerAssignment{Floor1Clothes: "1f-c-01 ", Floor1Shoe: "1F-S-01"},
		},
		{
			name: "short and padded ids are the same locker",
			from: models.LockerAssignment{Floor1Clothes: "1F-C-1"},
			to:   models.LockerAssignment{Floor1Clothes: "1F-C-01"},
		},
		{
			name:        "swap one slot",
			from:        models.LockerAssignment{Floor1Clothes: "1F-C-01", Floor1Shoe: "1F-S-01"},
			to:          models.LockerAssignment{Floor1Clothes: "1F-C-02", Floor1Shoe: "1F-S-01"},
			wantRelease: []string{"1F-C-01"},
			wantOccupy:  []string{"1F-C-02"},
		},
		{
			name:        "clear all",
			from:        models.LockerAssignment{Floor2Clothes: "2F-C-03", Floor2Shoe: "2F-S-03"},
			wantRelease: []string{"2F-C-03", "2F-S-03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(tt.from, tt.to)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRelease, plan.Release)
			var occupy []string
			for _, s := range plan.Occupy {
				occupy = append(occupy, s.LockerID)
			}
			assert.Equal(t, tt.wantOccupy, occupy)
		})
	}
}

func TestBuildPlan_KeepsSlotKind(t *testing.T) {
	plan, err := BuildPlan(models.LockerAssignment{}, models.LockerAssignment{Floor2Shoe: "2F-S-09"})
	require.NoError(t, err)
	require.Len(t, plan.Occupy, 1)
	assert.Equal(t, models.LockerKind{Location: "2F", Type: "shoe"}, plan.Occupy[0].Kind)
}

func TestBuildPlan_DuplicateLocker(t *testing.T) {
	_, err := BuildPlan(models.LockerAssignment{}, models.LockerAssignment{
		Floor1Clothes: "1F-C-01",
		Floor2Clothes: "1F-C-01",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLocker))
	assert.Contains(t, err.Error(), "1F-C-01")
}

func TestCheckSlot(t *testing.T) {
	slot := models.LockerSlot{Kind: models.LockerKind{Location: "1F", Type: "clothes"}, LockerID: "1F-C-05"}

	tests := []struct {
		name    string
		state   *LockerState
		wantErr error
		wantMsg string
	}{
		{"missing", nil, ErrLockerNotFound, "locker 1F-C-05 does not exist"},
		{"wrong floor", &LockerState{LockerID: "1F-C-05", Location: "2F", Type: "clothes"}, ErrLockerKindMismatch, "is not a 1F clothes locker"},
		{"wrong type", &LockerState{LockerID: "1F-C-05", Location: "1F", Type: "shoe"}, ErrLockerKindMismatch, "is not a 1F clothes locker"},
		{"occupied", &LockerState{LockerID: "1F-C-05", Location: "1F", Type: "clothes", IsOccupied: true}, ErrLockerOccupied, "already occupied"},
		{"free", &LockerState{LockerID: "1F-C-05", Location: "1F", Type: "clothes"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(slot, tt.state)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var allocErr *AllocationError
			require.ErrorAs(t, err, &allocErr)
			assert.Equal(t, "1F-C-05", allocErr.LockerID)
		})
	}
}

func TestHeld(t *testing.T) {
	a := models.LockerAssignment{Floor1Clothes: " 1f-c-01", Floor2Shoe: "2F-S-02"}
	assert.Equal(t, []string{"1F-C-01", "2F-S-02"}, Held(a))
	assert.Empty(t, Held(models.LockerAssignment{}))
}
