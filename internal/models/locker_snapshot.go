package models

import "time"

// LockerSnapshot records occupancy of every locker kind at a point in time
type LockerSnapshot struct {
	SnapshotID          int       `json:"snapshot_id"`
	SnapshotTime        time.Time `json:"snapshot_time"`
	OneFClothesOccupied int       `json:"one_f_clothes_occupied"`
	OneFClothesTotal    int       `json:"one_f_clothes_total"`
	OneFShoeOccupied    int       `json:"one_f_shoe_occupied"`
	OneFShoeTotal       int       `json:"one_f_shoe_total"`
	TwoFClothesOccupied int       `json:"two_f_clothes_occupied"`
	TwoFClothesTotal    int       `json:"two_f_clothes_total"`
	TwoFShoeOccupied    int       `json:"two_f_shoe_occupied"`
	TwoFShoeTotal       int       `json:"two_f_shoe_total"`
	Source              string    `json:"source"`
}

// SnapshotFromSummary flattens a summary into snapshot columns
func SnapshotFromSummary(s *LockerSummary, source string) *LockerSnapshot {
	c1 := s.Get(LocationFloor1, LockerTypeClothes)
	s1 := s.Get(LocationFloor1, LockerTypeShoe)
	c2 := s.Get(LocationFloor2, LockerTypeClothes)
	s2 := s.Get(LocationFloor2, LockerTypeShoe)
	return &LockerSnapshot{
		OneFClothesOccupied: c1.Occupied,
		OneFClothesTotal:    c1.Total,
		OneFShoeOccupied:    s1.Occupied,
		OneFShoeTotal:       s1.Total,
		TwoFClothesOccupied: c2.Occupied,
		TwoFClothesTotal:    c2.Total,
		TwoFShoeOccupied:    s2.Occupied,
		TwoFShoeTotal:       s2.Total,
		Source:              source,
	}
}
