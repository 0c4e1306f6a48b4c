package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
)

const (
	itemLimitPrefix = "item_limit."
	MinItemLimit    = 1
	MaxItemLimit    = 50
)

type SystemSettingService struct {
	Repo             *repositories.SystemSettingRepository
	DefaultItemLimit int
}

func NewSystemSettingService(repo *repositories.SystemSettingRepository, defaultItemLimit int) *SystemSettingService {
	if defaultItemLimit < MinItemLimit || defaultItemLimit > MaxItemLimit {
		defaultItemLimit = 10
	}
	return &SystemSettingService{Repo: repo, DefaultItemLimit: defaultItemLimit}
}

func (s *SystemSettingService) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	setting, err := s.Repo.Get(ctx, key)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("setting %s does not exist", key), "")
	}
	return setting, nil
}

func (s *SystemSettingService) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.Repo.List(ctx)
}

func (s *SystemSettingService) UpdateSetting(ctx context.Context, key string, value string, userID int) error {
	if strings.HasPrefix(key, itemLimitPrefix) {
		category := strings.TrimPrefix(key, itemLimitPrefix)
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return validationf("limit for %s must be a number", category)
		}
		return s.SaveItemLimits(ctx, models.ItemCategoryLimits{category: n}, userID)
	}
	if err := s.Repo.Update(ctx, key, value, userID); err != nil {
		return classify(err, fmt.Sprintf("setting %s does not exist", key), "")
	}
	return nil
}

// ItemLimits returns the row limit of every category. Missing or
// malformed settings fall back to the default.
func (s *SystemSettingService) ItemLimits(ctx context.Context) (models.ItemCategoryLimits, error) {
	settings, err := s.Repo.ListByPrefix(ctx, itemLimitPrefix)
	if err != nil {
		return nil, err
	}
	return ItemLimitsFromSettings(settings, s.DefaultItemLimit), nil
}

// SaveItemLimits validates and stores limits. Only the given categories change.
func (s *SystemSettingService) SaveItemLimits(ctx context.Context, limits models.ItemCategoryLimits, userID int) error {
	if err := ValidateItemLimits(limits); err != nil {
		return err
	}
	for category, n := range limits {
		desc := fmt.Sprintf("Max %s rows per employee", category)
		if err := s.Repo.Upsert(ctx, itemLimitPrefix+category, strconv.Itoa(n), desc, userID); err != nil {
			return err
		}
	}
	return nil
}

func ItemLimitsFromSettings(settings []*models.SystemSetting, def int) models.ItemCategoryLimits {
	limits := make(models.ItemCategoryLimits, len(models.ItemCategories))
	for _, c := range models.ItemCategories {
		limits[c] = def
	}
	for _, st := range settings {
		category := strings.TrimPrefix(st.SettingKey, itemLimitPrefix)
		if _, known := limits[category]; !known {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(st.SettingValue))
		if err != nil || n < MinItemLimit || n > MaxItemLimit {
			continue
		}
		limits[category] = n
	}
	return limits
}

func ValidateItemLimits(limits models.ItemCategoryLimits) error {
	if len(limits) == 0 {
		return validationf("no limits given")
	}
	for category, n := range limits {
		if !isItemCategory(category) {
			return validationf("unknown item category %s", category)
		}
		if n < MinItemLimit || n > MaxItemLimit {
			return validationf("limit for %s must be between %d and %d", category, MinItemLimit, MaxItemLimit)
		}
	}
	return nil
}
