package services

import (
	"context"
	"errors"
	"fmt"

	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/metrics"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/textutil"
)

// EmployeeHeaders is the column layout of the employee template, import and export
var EmployeeHeaders = []string{"工号", "姓名", "工序", "1F衣柜", "1F鞋柜", "2F衣柜", "2F鞋柜", "无尘服1尺码", "鞋码"}

var employeeSampleRow = []string{"P001", "张三", "热切", "1F-C-01", "1F-S-01", "2F-C-01", "2F-S-01", "L", "42"}

const (
	minImportColumns = 7
	statusHeader     = "状态"
)

type ImportService struct {
	Employees *EmployeeService
	Items     *IssuedItemService
	Logs      *SystemLogService
}

func NewImportService(employees *EmployeeService, items *IssuedItemService, logs *SystemLogService) *ImportService {
	return &ImportService{Employees: employees, Items: items, Logs: logs}
}

// EmployeeTemplate returns the import template with one sample row
func (s *ImportService) EmployeeTemplate(format string) (*TableFile, error) {
	return RenderTable(format, "employee_template", "Employees", EmployeeHeaders, [][]string{employeeSampleRow})
}

// ImportRow is one data row of an employee import
type ImportRow struct {
	Line           int
	Input          models.EmployeeInput
	DustSuitSize   string
	SafetyShoeSize string
}

// ParseEmployeeRows splits a table into rows to import and per-row errors.
// The first row is the header. Rows with every cell blank are skipped.
func ParseEmployeeRows(rows [][]string) ([]ImportRow, []string, error) {
	if len(rows) <= 1 {
		return nil, nil, validationf("file is empty or only contains the header")
	}

	var parsed []ImportRow
	var rowErrors []string
	for i, cells := range rows[1:] {
		line := i + 2
		if textutil.AllBlank(cells...) {
			continue
		}
		if len(cells) < minImportColumns {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: expected at least %d columns", line, minImportColumns))
			continue
		}
		parsed = append(parsed, ImportRow{
			Line: line,
			Input: models.EmployeeInput{
				EmpNo:           textutil.Cell(cells, 0),
				Name:            textutil.Cell(cells, 1),
				Process:         textutil.Cell(cells, 2),
				Locker1FClothes: textutil.Cell(cells, 3),
				Locker1FShoe:    textutil.Cell(cells, 4),
				Locker2FClothes: textutil.Cell(cells, 5),
				Locker2FShoe:    textutil.Cell(cells, 6),
			},
			DustSuitSize:   textutil.Cell(cells, 7),
			SafetyShoeSize: textutil.Cell(cells, 8),
		})
	}
	return parsed, rowErrors, nil
}

// ImportEmployees adds every row as a new employee. Rows fail independently.
func (s *ImportService) ImportEmployees(ctx context.Context, filename string, data []byte, operator string) (*models.ImportResult, error) {
	table, err := ReadTable(filename, data)
	if err != nil {
		return nil, err
	}
	rows, rowErrors, err := ParseEmployeeRows(table)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{Errors: rowErrors, FailedCount: len(rowErrors)}
	for _, row := range rows {
		if _, err := s.Employees.Add(ctx, row.Input, operator); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %s", row.Line, row.Input.EmpNo, userMessage(err)))
			continue
		}
		result.SuccessCount++

		if items := initialItems(row); len(items) > 0 {
			if _, err := s.Items.Replace(ctx, row.Input.EmpNo, items, operator); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("row %d (%s): employee added but sizes not saved: %s", row.Line, row.Input.EmpNo, userMessage(err)))
			}
		}
	}

	metrics.ImportedRows.WithLabelValues("employee", "success").Add(float64(result.SuccessCount))
	metrics.ImportedRows.WithLabelValues("employee", "failed").Add(float64(result.FailedCount))
	logger.InfoLog(ctx, "[Import] %s: success %d, failed %d", filename, result.SuccessCount, result.FailedCount)
	s.Logs.record(ctx, models.LogTypeImport, operator,
		fmt.Sprintf("CSV import completed: success %d, failed %d", result.SuccessCount, result.FailedCount))
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return result, nil
}

func initialItems(row ImportRow) []models.IssuedItem {
	var items []models.IssuedItem
	if row.DustSuitSize != "" {
		items = append(items, models.IssuedItem{Category: models.CategoryDustSuit, Size: row.DustSuitSize})
	}
	if row.SafetyShoeSize != "" {
		items = append(items, models.IssuedItem{Category: models.CategorySafetyShoe, Size: row.SafetyShoeSize})
	}
	return items
}

// ExportEmployees writes the roster in the template layout plus a status column
func (s *ImportService) ExportEmployees(ctx context.Context, format string) (*TableFile, error) {
	employees, err := s.Employees.Repo.ListForExport(ctx)
	if err != nil {
		return nil, err
	}

	headers := append(append([]string{}, EmployeeHeaders...), statusHeader)
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		status := "在职"
		if !e.IsActive() {
			status = "离职"
		}
		rows = append(rows, []string{
			e.EmpNo, e.Name, e.Process,
			e.Locker1FClothes, e.Locker1FShoe, e.Locker2FClothes, e.Locker2FShoe,
			e.DustSuitSize, e.SafetyShoeSize, status,
		})
	}
	return RenderTable(format, "employees", "Employees", headers, rows)
}

// userMessage hides internal errors from per-row import reports
func userMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	logger.ErrorLog(context.Background(), err, "[Import] row failed")
	return "internal error"
}
