package lockers

import (
	"errors"
	"fmt"

	"cleanguard-backend/internal/models"
)

var (
	ErrLockerNotFound     = errors.New("locker does not exist")
	ErrLockerKindMismatch = errors.New("locker kind mismatch")
	ErrLockerOccupied     = errors.New("locker is already occupied")
	ErrDuplicateLocker    = errors.New("locker assigned to more than one slot")
)

// AllocationError names the locker that broke an allocation rule.
// errors.Is matches the wrapped sentinel.
type AllocationError struct {
	LockerID string
	Kind     models.LockerKind
	Err      error
}

func (e *AllocationError) Error() string {
	switch e.Err {
	case ErrLockerNotFound:
		return fmt.Sprintf("locker %s does not exist", e.LockerID)
	case ErrLockerKindMismatch:
		return fmt.Sprintf("locker %s is not a %s %s locker", e.LockerID, e.Kind.Location, e.Kind.Type)
	case ErrLockerOccupied:
		return fmt.Sprintf("locker %s is already occupied", e.LockerID)
	case ErrDuplicateLocker:
		return fmt.Sprintf("locker %s is assigned to more than one slot", e.LockerID)
	}
	return fmt.Sprintf("locker %s: %v", e.LockerID, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// LockerState is the locked row read inside an allocation transaction
type LockerState struct {
	LockerID   string
	Location   string
	Type       string
	IsOccupied bool
	Remark     string
}

// Plan is the set of occupancy changes needed to move an employee
// from one assignment to another. Slots whose locker is unchanged are
// left alone.
type Plan struct {
	Release []string
	Occupy  []models.LockerSlot
}

// Empty reports whether the plan touches no lockers
func (p Plan) Empty() bool {
	return len(p.Release) == 0 && len(p.Occupy) == 0
}

// BuildPlan diffs two assignments. Ids are normalized; a blank slot means
// no locker. The same locker in two slots of the new assignment is rejected.
func BuildPlan(from, to models.LockerAssignment) (Plan, error) {
	var plan Plan

	oldSlots := from.Slots()
	newSlots := to.Slots()

	seen := make(map[string]bool)
	for _, s := range newSlots {
		id := NormalizeID(s.LockerID)
		if id == "" {
			continue
		}
		if seen[id] {
			return Plan{}, &AllocationError{LockerID: id, Kind: s.Kind, Err: ErrDuplicateLocker}
		}
		seen[id] = true
	}

	kept := make(map[string]bool)
	for i, s := range newSlots {
		newID := NormalizeID(s.LockerID)
		oldID := NormalizeID(oldSlots[i].LockerID)
		if newID != "" && newID == oldID {
			kept[newID] = true
		}
	}

	for _, s := range oldSlots {
		id := NormalizeID(s.LockerID)
		if id != "" && !kept[id] {
			plan.Release = append(plan.Release, id)
		}
	}
	for _, s := range newSlots {
		id := NormalizeID(s.LockerID)
		if id != "" && !kept[id] {
			plan.Occupy = append(plan.Occupy, models.LockerSlot{Kind: s.Kind, LockerID: id})
		}
	}

	return plan, nil
}

// CheckSlot validates a locked locker row against the slot it is meant to fill.
// state is nil when the row does not exist. Lockers released earlier in the
// same transaction must already be reflected as free in state.
func CheckSlot(slot models.LockerSlot, state *LockerState) error {
	if state == nil {
		return &AllocationError{LockerID: slot.LockerID, Kind: slot.Kind, Err: ErrLockerNotFound}
	}
	if state.Location != slot.Kind.Location || state.Type != slot.Kind.Type {
		return &AllocationError{LockerID: slot.LockerID, Kind: slot.Kind, Err: ErrLockerKindMismatch}
	}
	if state.IsOccupied {
		return &AllocationError{LockerID: slot.LockerID, Kind: slot.Kind, Err: ErrLockerOccupied}
	}
	return nil
}

// NormalizeAssignment trims and upper-cases all four slots
func NormalizeAssignment(a models.LockerAssignment) models.LockerAssignment {
	return models.LockerAssignment{
		Floor1Clothes: NormalizeID(a.Floor1Clothes),
		Floor1Shoe:    NormalizeID(a.Floor1Shoe),
		Floor2Clothes: NormalizeID(a.Floor2Clothes),
		Floor2Shoe:    NormalizeID(a.Floor2Shoe),
	}
}

// Held returns the non-blank locker ids of an assignment
func Held(a models.LockerAssignment) []string {
	var ids []string
	for _, s := range a.Slots() {
		if id := NormalizeID(s.LockerID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
