package services

import (
	"context"
	"fmt"
	"strings"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
	"cleanguard-backend/internal/textutil"
)

const (
	msgEmployeeExists = "employee number already exists"
)

type EmployeeService struct {
	Repo    *repositories.EmployeeRepository
	Lockers *LockerService
	Logs    *SystemLogService
}

func NewEmployeeService(repo *repositories.EmployeeRepository, lockerService *LockerService, logs *SystemLogService) *EmployeeService {
	return &EmployeeService{Repo: repo, Lockers: lockerService, Logs: logs}
}

// BuildEmployee trims and validates input and derives the search initials.
// Locker ids are normalized; blank slots mean no locker.
func BuildEmployee(in models.EmployeeInput) (*models.Employee, error) {
	e := &models.Employee{
		EmpNo:   strings.TrimSpace(in.EmpNo),
		Name:    strings.TrimSpace(in.Name),
		Process: strings.TrimSpace(in.Process),
	}
	if e.EmpNo == "" {
		return nil, validationf("employee number is required")
	}
	if e.Name == "" {
		return nil, validationf("name is required")
	}
	e.Pinyin = textutil.Initials(e.Name)

	a := lockers.NormalizeAssignment(in.Assignment())
	e.Locker1FClothes = a.Floor1Clothes
	e.Locker1FShoe = a.Floor1Shoe
	e.Locker2FClothes = a.Floor2Clothes
	e.Locker2FShoe = a.Floor2Shoe
	return e, nil
}

func notFoundEmployee(empNo string) string {
	return fmt.Sprintf("employee %s does not exist", empNo)
}

// Query lists employees matching keyword, active first
func (s *EmployeeService) Query(ctx context.Context, keyword string) ([]*models.Employee, error) {
	return s.Repo.Query(ctx, strings.TrimSpace(keyword))
}

func (s *EmployeeService) Get(ctx context.Context, empNo string) (*models.Employee, error) {
	empNo = strings.TrimSpace(empNo)
	e, err := s.Repo.GetByEmpNo(ctx, empNo)
	if err != nil {
		return nil, classify(err, notFoundEmployee(empNo), "")
	}
	return e, nil
}

// LockerInfo returns the short form used by labels and confirmations
func (s *EmployeeService) LockerInfo(ctx context.Context, empNo string) (*models.EmployeeLockerInfo, error) {
	e, err := s.Get(ctx, empNo)
	if err != nil {
		return nil, err
	}
	return &models.EmployeeLockerInfo{
		EmpNo:           e.EmpNo,
		Name:            e.Name,
		Status:          e.Status,
		Locker1FClothes: e.Locker1FClothes,
		Locker1FShoe:    e.Locker1FShoe,
		Locker2FClothes: e.Locker2FClothes,
		Locker2FShoe:    e.Locker2FShoe,
	}, nil
}

// Add creates an active employee and occupies the requested lockers atomically
func (s *EmployeeService) Add(ctx context.Context, in models.EmployeeInput, operator string) (*models.Employee, error) {
	e, err := BuildEmployee(in)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, classify(err, "", msgEmployeeExists)
	}

	s.Logs.record(ctx, models.LogTypeEmployee, operator, fmt.Sprintf("employee added: %s-%s", e.EmpNo, e.Name))
	s.Lockers.OccupancyChanged(ctx, "AddEmployee")
	return e, nil
}

// Update rewrites the employee and moves lockers atomically. A blank
// emp_no in the input keeps the current one.
func (s *EmployeeService) Update(ctx context.Context, empNo string, in models.EmployeeInput, operator string) (*models.Employee, error) {
	empNo = strings.TrimSpace(empNo)
	if strings.TrimSpace(in.EmpNo) == "" {
		in.EmpNo = empNo
	}
	e, err := BuildEmployee(in)
	if err != nil {
		return nil, err
	}

	old, err := s.Repo.Update(ctx, empNo, e)
	if err != nil {
		return nil, classify(err, notFoundEmployee(empNo), msgEmployeeExists)
	}

	msg := fmt.Sprintf("employee updated: %s-%s", e.EmpNo, e.Name)
	if old.EmpNo != e.EmpNo {
		msg += fmt.Sprintf(" (was %s)", old.EmpNo)
	}
	s.Logs.record(ctx, models.LogTypeEmployee, operator, msg)
	s.Lockers.OccupancyChanged(ctx, "UpdateEmployee")
	return e, nil
}

// Resign releases all lockers and marks the employee resigned
func (s *EmployeeService) Resign(ctx context.Context, empNo, operator string) (*models.StatusChangeResult, error) {
	empNo = strings.TrimSpace(empNo)
	e, changed, err := s.Repo.Resign(ctx, empNo)
	if err != nil {
		return nil, classify(err, notFoundEmployee(empNo), "")
	}

	result := &models.StatusChangeResult{EmpNo: e.EmpNo, Status: models.EmployeeStatusResigned, Changed: changed}
	if !changed {
		return result, nil
	}

	s.Logs.record(ctx, models.LogTypeEmployee, operator,
		fmt.Sprintf("employee resigned and lockers released: %s-%s", e.EmpNo, e.Name))
	s.Lockers.OccupancyChanged(ctx, "Resign")
	return result, nil
}

// Restore reactivates a resigned employee. Lockers are not reassigned.
func (s *EmployeeService) Restore(ctx context.Context, empNo, operator string) (*models.StatusChangeResult, error) {
	empNo = strings.TrimSpace(empNo)
	e, changed, err := s.Repo.Restore(ctx, empNo)
	if err != nil {
		return nil, classify(err, notFoundEmployee(empNo), "")
	}

	result := &models.StatusChangeResult{EmpNo: e.EmpNo, Status: models.EmployeeStatusActive, Changed: changed}
	if !changed {
		return result, nil
	}

	s.Logs.record(ctx, models.LogTypeEmployee, operator, fmt.Sprintf("employee restored: %s-%s", e.EmpNo, e.Name))
	s.Lockers.OccupancyChanged(ctx, "Restore")
	return result, nil
}

// Delete releases the employee's lockers and removes the employee with their items
func (s *EmployeeService) Delete(ctx context.Context, empNo, operator string) error {
	empNo = strings.TrimSpace(empNo)
	e, err := s.Repo.Delete(ctx, empNo)
	if err != nil {
		return classify(err, notFoundEmployee(empNo), "")
	}

	s.Logs.record(ctx, models.LogTypeEmployee, operator, fmt.Sprintf("employee deleted: %s-%s", e.EmpNo, e.Name))
	s.Lockers.OccupancyChanged(ctx, "DeleteEmployee")
	return nil
}
