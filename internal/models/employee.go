package models

import "time"

const (
	EmployeeStatusResigned = 0
	EmployeeStatusActive   = 1
)

// Employee is a factory worker with up to four locker slots.
// Blank slot fields mean no locker is held in that slot.
type Employee struct {
	ID              int       `json:"id"`
	EmpNo           string    `json:"emp_no"`
	Name            string    `json:"name"`
	Pinyin          string    `json:"pinyin"`
	Process         string    `json:"process"`
	Locker1FClothes string    `json:"locker_1f_clothes"`
	Locker1FShoe    string    `json:"locker_1f_shoe"`
	Locker2FClothes string    `json:"locker_2f_clothes"`
	Locker2FShoe    string    `json:"locker_2f_shoe"`
	Status          int       `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsActive reports whether the employee still holds a position
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// Assignment returns the employee's current locker slots
func (e *Employee) Assignment() LockerAssignment {
	return LockerAssignment{
		Floor1Clothes: e.Locker1FClothes,
		Floor1Shoe:    e.Locker1FShoe,
		Floor2Clothes: e.Locker2FClothes,
		Floor2Shoe:    e.Locker2FShoe,
	}
}

// EmployeeInput is used for both creating and updating an employee
type EmployeeInput struct {
	EmpNo           string `json:"emp_no"`
	Name            string `json:"name"`
	Process         string `json:"process"`
	Locker1FClothes string `json:"locker_1f_clothes"`
	Locker1FShoe    string `json:"locker_1f_shoe"`
	Locker2FClothes string `json:"locker_2f_clothes"`
	Locker2FShoe    string `json:"locker_2f_shoe"`
}

// Assignment returns the requested locker slots
func (in *EmployeeInput) Assignment() LockerAssignment {
	return LockerAssignment{
		Floor1Clothes: in.Locker1FClothes,
		Floor1Shoe:    in.Locker1FShoe,
		Floor2Clothes: in.Locker2FClothes,
		Floor2Shoe:    in.Locker2FShoe,
	}
}

// EmployeeLockerInfo is the short form used by labels and confirmations
type EmployeeLockerInfo struct {
	EmpNo           string `json:"emp_no"`
	Name            string `json:"name"`
	Status          int    `json:"status"`
	Locker1FClothes string `json:"locker_1f_clothes"`
	Locker1FShoe    string `json:"locker_1f_shoe"`
	Locker2FClothes string `json:"locker_2f_clothes"`
	Locker2FShoe    string `json:"locker_2f_shoe"`
}

// StatusChangeResult reports whether a resign/restore actually changed anything
type StatusChangeResult struct {
	EmpNo   string `json:"emp_no"`
	Status  int    `json:"status"`
	Changed bool   `json:"changed"`
}
