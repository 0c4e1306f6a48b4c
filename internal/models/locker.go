package models

import "time"

const (
	LocationFloor1 = "1F"
	LocationFloor2 = "2F"

	LockerTypeClothes = "clothes"
	LockerTypeShoe    = "shoe"
)

type Locker struct {
	LockerID   string    `json:"locker_id"`
	Location   string    `json:"location"`
	Type       string    `json:"type"`
	IsOccupied bool      `json:"is_occupied"`
	Remark     string    `json:"remark"`
	HolderNo   string    `json:"holder_emp_no,omitempty"` // From joined employees table
	HolderName string    `json:"holder_name,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LockerKind is a (location, type) pair such as 1F clothes
type LockerKind struct {
	Location string `json:"location"`
	Type     string `json:"type"`
}

// AllLockerKinds lists the four kinds in display order
var AllLockerKinds = []LockerKind{
	{LocationFloor1, LockerTypeClothes},
	{LocationFloor1, LockerTypeShoe},
	{LocationFloor2, LockerTypeClothes},
	{LocationFloor2, LockerTypeShoe},
}

// LockerAssignment holds the four locker slots of one employee
type LockerAssignment struct {
	Floor1Clothes string `json:"locker_1f_clothes"`
	Floor1Shoe    string `json:"locker_1f_shoe"`
	Floor2Clothes string `json:"locker_2f_clothes"`
	Floor2Shoe    string `json:"locker_2f_shoe"`
}

// Slots returns the assignment as kind/id pairs in AllLockerKinds order
func (a LockerAssignment) Slots() []LockerSlot {
	return []LockerSlot{
		{Kind: AllLockerKinds[0], LockerID: a.Floor1Clothes},
		{Kind: AllLockerKinds[1], LockerID: a.Floor1Shoe},
		{Kind: AllLockerKinds[2], LockerID: a.Floor2Clothes},
		{Kind: AllLockerKinds[3], LockerID: a.Floor2Shoe},
	}
}

// LockerSlot is one slot of an assignment
type LockerSlot struct {
	Kind     LockerKind
	LockerID string
}

type LockerFilter struct {
	Location     string
	Type         string
	AbnormalOnly bool
}

// KindSummary is the occupancy of one locker kind
type KindSummary struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	Occupied int    `json:"occupied"`
	Total    int    `json:"total"`
}

// LockerSummary always carries all four kinds
type LockerSummary struct {
	Kinds         []KindSummary `json:"kinds"`
	TotalOccupied int           `json:"total_occupied"`
	TotalLockers  int           `json:"total_lockers"`
}

// Get returns the occupancy of a kind, zero if absent
func (s *LockerSummary) Get(location, lockerType string) KindSummary {
	for _, k := range s.Kinds {
		if k.Location == location && k.Type == lockerType {
			return k
		}
	}
	return KindSummary{Location: location, Type: lockerType}
}

// LockerHeatBlock is a region of consecutive lockers shown on the heat map
type LockerHeatBlock struct {
	Location      string  `json:"location"`
	Type          string  `json:"type"`
	RegionName    string  `json:"region_name"`
	Occupied      int     `json:"occupied"`
	Total         int     `json:"total"`
	OccupancyRate float64 `json:"occupancy_rate"`
	AbnormalCount int     `json:"abnormal_count"`
	HeatLevel     string  `json:"heat_level"`
}

type UpdateLockerRemarkRequest struct {
	Remark string `json:"remark"`
}

// LockerImportResult reports a locker list rebuild
type LockerImportResult struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Kept    int `json:"kept"`
}
