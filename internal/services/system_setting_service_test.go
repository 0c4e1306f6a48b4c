package services

import (
	"errors"
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestItemLimitsFromSettings(t *testing.T) {
	settings := []*models.SystemSetting{
		{SettingKey: "item_limit.dust_suit", SettingValue: " 4 "},
		{SettingKey: "item_limit.clean_cap", SettingValue: "abc"},
		{SettingKey: "item_limit.canvas_shoe", SettingValue: "99"},
		{SettingKey: "item_limit.gloves", SettingValue: "3"},
		{SettingKey: "other", SettingValue: "1"},
	}
	limits := ItemLimitsFromSettings(settings, 10)
	assert.Equal(t, models.ItemCategoryLimits{
		models.CategoryDustSuit:   4,
		models.CategorySafetyShoe: 10,
		models.CategoryCanvasShoe: 10,
		models.CategoryCleanCap:   10,
	}, limits)
}

func TestValidateItemLimits(t *testing.T) {
	assert.NoError(t, ValidateItemLimits(models.ItemCategoryLimits{models.CategoryDustSuit: 1, models.CategoryCleanCap: 50}))

	for name, limits := range map[string]models.ItemCategoryLimits{
		"empty":   {},
		"unknown": {"gloves": 2},
		"zero":    {models.CategoryDustSuit: 0},
		"too big": {models.CategoryDustSuit: 51},
	} {
		err := ValidateItemLimits(limits)
		assert.True(t, errors.Is(err, ErrValidation), name)
	}
}
