package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
	"cleanguard-backend/internal/textutil"
	"cleanguard-backend/internal/timeutil"
)

type IssuedItemService struct {
	Repo     *repositories.IssuedItemRepository
	Settings *SystemSettingService
	Logs     *SystemLogService
}

func NewIssuedItemService(repo *repositories.IssuedItemRepository, settings *SystemSettingService, logs *SystemLogService) *IssuedItemService {
	return &IssuedItemService{Repo: repo, Settings: settings, Logs: logs}
}

func isItemCategory(category string) bool {
	for _, c := range models.ItemCategories {
		if c == category {
			return true
		}
	}
	return false
}

// usesItemCode reports whether a category records a code; the others record a condition
func usesItemCode(category string) bool {
	return category == models.CategoryDustSuit || category == models.CategoryCleanCap
}

func categoryOrder(category string) int {
	for i, c := range models.ItemCategories {
		if c == category {
			return i
		}
	}
	return len(models.ItemCategories)
}

// normalizeCondition accepts the stored values and the Chinese labels used on paper forms
func normalizeCondition(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return "", true
	case models.ConditionNew, "新":
		return models.ConditionNew, true
	case models.ConditionUsed, "旧":
		return models.ConditionUsed, true
	}
	return "", false
}

// normalizeItem trims one row and checks the category specific fields
func normalizeItem(it models.IssuedItem) (models.IssuedItem, error) {
	it.Category = strings.TrimSpace(it.Category)
	it.Size = strings.TrimSpace(it.Size)
	it.ItemCode = strings.TrimSpace(it.ItemCode)
	it.IssueDate = strings.TrimSpace(it.IssueDate)

	if !isItemCategory(it.Category) {
		return it, fmt.Errorf("unknown item category %q", it.Category)
	}

	if usesItemCode(it.Category) {
		if strings.TrimSpace(it.ItemCondition) != "" {
			return it, fmt.Errorf("%s does not record a condition", it.Category)
		}
	} else {
		if it.ItemCode != "" {
			return it, fmt.Errorf("%s does not record a code", it.Category)
		}
		cond, ok := normalizeCondition(it.ItemCondition)
		if !ok {
			return it, fmt.Errorf("condition must be new or used, got %q", it.ItemCondition)
		}
		it.ItemCondition = cond
	}

	if it.IssueDate != "" {
		d, err := timeutil.NormalizeDate(it.IssueDate)
		if err != nil {
			return it, fmt.Errorf("invalid issue date %q", it.IssueDate)
		}
		it.IssueDate = d
	}
	return it, nil
}

func isBlankItem(it models.IssuedItem) bool {
	return textutil.AllBlank(it.Size, it.ItemCode, it.ItemCondition, it.IssueDate)
}

// NormalizeItems drops blank rows, validates the rest, enforces the per
// category limits and renumbers slot_index from 1 within each category.
// The result is ordered by category then slot.
func NormalizeItems(items []models.IssuedItem, limits models.ItemCategoryLimits) ([]models.IssuedItem, error) {
	out := make([]models.IssuedItem, 0, len(items))
	counts := make(map[string]int)

	for i, it := range items {
		if isBlankItem(it) {
			continue
		}
		n, err := normalizeItem(it)
		if err != nil {
			return nil, validationf("row %d: %v", i+1, err)
		}
		counts[n.Category]++
		n.SlotIndex = counts[n.Category]
		n.ItemID = 0
		n.EmpID = 0
		out = append(out, n)
	}

	for _, c := range models.ItemCategories {
		limit, ok := limits[c]
		if !ok {
			continue
		}
		if counts[c] > limit {
			return nil, validationf("too many %s rows: %d (limit %d)", c, counts[c], limit)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return categoryOrder(out[a].Category) < categoryOrder(out[b].Category)
	})
	return out, nil
}

// Get returns the employee's items by category and slot
func (s *IssuedItemService) Get(ctx context.Context, empNo string) ([]*models.IssuedItem, error) {
	empNo = strings.TrimSpace(empNo)
	items, err := s.Repo.ListByEmpNo(ctx, empNo)
	if err != nil {
		return nil, classify(err, notFoundEmployee(empNo), "")
	}
	return items, nil
}

// Replace validates items and swaps the employee's whole item set in one transaction
func (s *IssuedItemService) Replace(ctx context.Context, empNo string, items []models.IssuedItem, operator string) ([]models.IssuedItem, error) {
	empNo = strings.TrimSpace(empNo)
	limits, err := s.Settings.ItemLimits(ctx)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeItems(items, limits)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Replace(ctx, empNo, normalized); err != nil {
		return nil, classify(err, notFoundEmployee(empNo), "")
	}

	s.Logs.record(ctx, models.LogTypeEmployee, operator, fmt.Sprintf("items updated: %s, count=%d", empNo, len(normalized)))
	return normalized, nil
}

// ParseItemRows turns pasted spreadsheet text into rows of one category.
// Columns are size, code or condition, issue date; tab separated with a
// comma fallback. A header line starting with 尺码 is skipped.
func ParseItemRows(category, text string) ([]models.IssuedItem, error) {
	category = strings.TrimSpace(category)
	if !isItemCategory(category) {
		return nil, validationf("unknown item category %q", category)
	}

	var items []models.IssuedItem
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sep := "\t"
		if !strings.Contains(line, "\t") {
			sep = ","
			line = strings.ReplaceAll(line, "，", ",")
		}
		cells := textutil.TrimCells(strings.Split(line, sep))
		if len(items) == 0 && textutil.Cell(cells, 0) == "尺码" {
			continue
		}

		it := models.IssuedItem{
			Category:  category,
			Size:      textutil.Cell(cells, 0),
			IssueDate: textutil.Cell(cells, 2),
		}
		if usesItemCode(category) {
			it.ItemCode = textutil.Cell(cells, 1)
		} else {
			it.ItemCondition = textutil.Cell(cells, 1)
		}
		if isBlankItem(it) {
			continue
		}

		n, err := normalizeItem(it)
		if err != nil {
			return nil, validationf("line %d: %v", i+1, err)
		}
		n.SlotIndex = len(items) + 1
		items = append(items, n)
	}
	return items, nil
}

// ItemTemplate is the CSV header operators fill in before pasting rows
func ItemTemplate(category string) (*TableFile, error) {
	category = strings.TrimSpace(category)
	if !isItemCategory(category) {
		return nil, validationf("unknown item category %q", category)
	}
	headers := []string{"尺码", "新旧", "领用日期"}
	if usesItemCode(category) {
		headers = []string{"尺码", "编码", "领用日期"}
	}
	return RenderTable(FormatCSV, "items_"+category+"_template", "Items", headers, nil)
}
