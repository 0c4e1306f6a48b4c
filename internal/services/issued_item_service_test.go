package services

import (
	"errors"
	"strings"
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeItems(t *testing.T) {
	limits := models.ItemCategoryLimits{
		models.CategoryDustSuit:   2,
		models.CategorySafetyShoe: 2,
		models.CategoryCanvasShoe: 2,
		models.CategoryCleanCap:   2,
	}
	items := []models.IssuedItem{
		{Category: models.CategorySafetyShoe, Size: "42", ItemCondition: "新", IssueDate: "2024/3/5", SlotIndex: 9},
		{Category: models.CategoryDustSuit, Size: "L", ItemCode: "DS-1"},
		{Category: models.CategoryDustSuit},
		{Category: models.CategoryDustSuit, Size: "XL", ItemCode: "DS-2"},
	}

	out, err := NormalizeItems(items, limits)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, models.CategoryDustSuit, out[0].Category)
	assert.Equal(t, 1, out[0].SlotIndex)
	assert.Equal(t, "DS-1", out[0].ItemCode)
	assert.Equal(t, 2, out[1].SlotIndex)
	assert.Equal(t, "DS-2", out[1].ItemCode)

	assert.Equal(t, models.CategorySafetyShoe, out[2].Category)
	assert.Equal(t, 1, out[2].SlotIndex)
	assert.Equal(t, models.ConditionNew, out[2].ItemCondition)
	assert.Equal(t, "2024-03-05", out[2].IssueDate)
}

func TestNormalizeItems_Rejects(t *testing.T) {
	limits := models.ItemCategoryLimits{models.CategoryCleanCap: 1}
	tests := []struct {
		name  string
		items []models.IssuedItem
	}{
		{"unknown category", []models.IssuedItem{{Category: "gloves", Size: "M"}}},
		{"code on shoe", []models.IssuedItem{{Category: models.CategoryCanvasShoe, Size: "40", ItemCode: "X"}}},
		{"condition on suit", []models.IssuedItem{{Category: models.CategoryDustSuit, Size: "L", ItemCondition: "new"}}},
		{"bad condition", []models.IssuedItem{{Category: models.CategorySafetyShoe, Size: "40", ItemCondition: "broken"}}},
		{"bad date", []models.IssuedItem{{Category: models.CategoryDustSuit, Size: "L", IssueDate: "yesterday"}}},
		{"over limit", []models.IssuedItem{
			{Category: models.CategoryCleanCap, Size: "M"},
			{Category: models.CategoryCleanCap, Size: "L"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeItems(tt.items, limits)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestParseItemRows(t *testing.T) {
	text := "尺码\t新旧\t领用日期\r\n42\t旧\t2024-01-02\n\n43,新,2024/2/3\n"
	items, err := ParseItemRows(models.CategorySafetyShoe, text)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "42", items[0].Size)
	assert.Equal(t, models.ConditionUsed, items[0].ItemCondition)
	assert.Equal(t, "2024-01-02", items[0].IssueDate)
	assert.Equal(t, 1, items[0].SlotIndex)

	assert.Equal(t, "43", items[1].Size)
	assert.Equal(t, models.ConditionNew, items[1].ItemCondition)
	assert.Equal(t, "2024-02-03", items[1].IssueDate)
	assert.Equal(t, 2, items[1].SlotIndex)
}

func TestParseItemRows_CodeCategory(t *testing.T) {
	items, err := ParseItemRows(models.CategoryDustSuit, "L\tDS-9\t")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "DS-9", items[0].ItemCode)
	assert.Empty(t, items[0].ItemCondition)
}

func TestParseItemRows_Errors(t *testing.T) {
	_, err := ParseItemRows("gloves", "M")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ParseItemRows(models.CategorySafetyShoe, "42\tbroken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestItemTemplate(t *testing.T) {
	f, err := ItemTemplate(models.CategoryCleanCap)
	require.NoError(t, err)
	assert.Equal(t, "items_clean_cap_template.csv", f.Name)
	assert.True(t, strings.Contains(string(f.Data), "尺码,编码,领用日期"))

	f, err = ItemTemplate(models.CategoryCanvasShoe)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(f.Data), "尺码,新旧,领用日期"))

	_, err = ItemTemplate("gloves")
	assert.Error(t, err)
}
