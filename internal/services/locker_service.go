package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"cleanguard-backend/internal/cache"
	"cleanguard-backend/internal/live"
	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/metrics"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
	"cleanguard-backend/internal/textutil"
)

const (
	lockerCacheTTL        = 5 * time.Minute
	defaultSnapshotLimit  = 100
	maxSnapshotLimit      = 5000
	SnapshotSourceStartup = "Startup"
)

type LockerService struct {
	Repo         *repositories.LockerRepository
	SnapshotRepo *repositories.LockerSnapshotRepository
	Logs         *SystemLogService
	Hub          *live.Hub
}

func NewLockerService(repo *repositories.LockerRepository, snapshotRepo *repositories.LockerSnapshotRepository,
	logs *SystemLogService, hub *live.Hub) *LockerService {
	return &LockerService{Repo: repo, SnapshotRepo: snapshotRepo, Logs: logs, Hub: hub}
}

// Seed makes sure the standard lockers exist and records a startup snapshot
func (s *LockerService) Seed(ctx context.Context, perKind int) error {
	added, err := s.Repo.Seed(ctx, perKind)
	if err != nil {
		return fmt.Errorf("seed lockers: %w", err)
	}
	if added > 0 {
		logger.InfoLog(ctx, "[Locker] seeded %d lockers", added)
	}
	s.OccupancyChanged(ctx, SnapshotSourceStartup)
	return nil
}

// Query lists lockers. Empty location or type means any.
func (s *LockerService) Query(ctx context.Context, f models.LockerFilter) ([]*models.Locker, error) {
	if err := validateKindFilter(f.Location, f.Type); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, f)
}

// Available returns free lockers of one kind
func (s *LockerService) Available(ctx context.Context, location, lockerType string) ([]string, error) {
	if !lockers.ValidKind(location, lockerType) {
		return nil, validationf("unknown locker kind %s %s", location, lockerType)
	}
	return s.Repo.Available(ctx, location, lockerType)
}

// AvailableIncluding is Available plus the currently selected locker, so an
// edit form can keep showing the employee's own locker
func (s *LockerService) AvailableIncluding(ctx context.Context, location, lockerType, selected string) ([]string, error) {
	ids, err := s.Available(ctx, location, lockerType)
	if err != nil {
		return nil, err
	}
	return mergeSelected(ids, selected), nil
}

func mergeSelected(ids []string, selected string) []string {
	selected = lockers.NormalizeID(selected)
	if selected == "" {
		return ids
	}
	for _, id := range ids {
		if id == selected {
			return ids
		}
	}
	out := append(append([]string{}, ids...), selected)
	sort.Strings(out)
	return out
}

// Summary returns occupancy of all four kinds, served from Redis when cached
func (s *LockerService) Summary(ctx context.Context) (*models.LockerSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.LockerSummaryKey); ok {
		var summary models.LockerSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	kinds, err := s.Repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	summary := lockers.CompleteSummary(kinds)

	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, cache.LockerSummaryKey, data, lockerCacheTTL)
	}
	return summary, nil
}

// HeatBlocks groups lockers into regions of ten for the heat map.
// An empty floor means both floors.
func (s *LockerService) HeatBlocks(ctx context.Context, floor string) ([]models.LockerHeatBlock, error) {
	floor = strings.ToUpper(strings.TrimSpace(floor))
	if floor != "" && floor != models.LocationFloor1 && floor != models.LocationFloor2 {
		return nil, validationf("unknown floor %s", floor)
	}

	key := cache.HeatKey(floor)
	if data, ok := cache.GetCached(ctx, key); ok {
		var blocks []models.LockerHeatBlock
		if err := json.Unmarshal(data, &blocks); err == nil {
			return blocks, nil
		}
	}

	states, err := s.Repo.States(ctx)
	if err != nil {
		return nil, err
	}
	blocks := lockers.BuildHeatBlocks(states, floor)

	if data, err := json.Marshal(blocks); err == nil {
		cache.SetCached(ctx, key, data, lockerCacheTTL)
	}
	return blocks, nil
}

// UpdateRemark sets or clears the abnormal-condition note of a locker
func (s *LockerService) UpdateRemark(ctx context.Context, lockerID, remark, operator string) error {
	lockerID = lockers.NormalizeID(lockerID)
	if lockerID == "" {
		return validationf("locker id is required")
	}

	if err := s.Repo.UpdateRemark(ctx, lockerID, textutil.NullIfBlank(remark)); err != nil {
		return classify(err, fmt.Sprintf("locker %s does not exist", lockerID), "")
	}

	cache.InvalidateLockerCaches(ctx)
	msg := fmt.Sprintf("locker remark updated: %s", lockerID)
	if strings.TrimSpace(remark) == "" {
		msg = fmt.Sprintf("locker remark cleared: %s", lockerID)
	} else {
		msg += " -> " + strings.TrimSpace(remark)
	}
	s.Logs.record(ctx, models.LogTypeLocker, operator, msg)
	return nil
}

// Import rebuilds the locker list from an uploaded template
func (s *LockerService) Import(ctx context.Context, filename string, data []byte, operator string) (*models.LockerImportResult, error) {
	rows, err := ReadTable(filename, data)
	if err != nil {
		return nil, err
	}
	wanted, err := ParseLockerRows(rows)
	if err != nil {
		return nil, err
	}

	result, err := s.Repo.ReplaceAll(ctx, wanted)
	if err != nil {
		return nil, classify(err, "", "")
	}

	s.Logs.record(ctx, models.LogTypeImport, operator, fmt.Sprintf(
		"locker import completed: total %d, added %d, removed %d, kept %d",
		result.Total, result.Added, result.Removed, result.Kept))
	s.OccupancyChanged(ctx, "ImportLockers")
	return result, nil
}

// ParseLockerRows reads the header row for kinds and collects the ids below
// each header. Ids must match their column's kind.
func ParseLockerRows(rows [][]string) (map[models.LockerKind][]string, error) {
	if len(rows) == 0 {
		return nil, validationf("file has no header row")
	}

	columns := make(map[int]models.LockerKind)
	for i, h := range rows[0] {
		if h == "" {
			continue
		}
		kind, ok := lockers.ParseKindLabel(h)
		if !ok {
			return nil, validationf("unknown column %q, expected 1F衣柜, 1F鞋柜, 2F衣柜 or 2F鞋柜", h)
		}
		columns[i] = kind
	}
	if len(columns) == 0 {
		return nil, validationf("file has no locker columns")
	}

	wanted := make(map[models.LockerKind][]string)
	seen := make(map[string]bool)
	for r, row := range rows[1:] {
		for i, cell := range row {
			kind, ok := columns[i]
			if !ok {
				continue
			}
			id := lockers.NormalizeID(cell)
			if id == "" {
				continue
			}
			got, _, err := lockers.ParseID(id)
			if err != nil {
				return nil, validationf("row %d: invalid locker id %q", r+2, cell)
			}
			if got != kind {
				return nil, validationf("row %d: locker %s does not belong in column %s", r+2, id, lockers.KindLabel(kind))
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			wanted[kind] = append(wanted[kind], id)
		}
	}
	if len(seen) == 0 {
		return nil, validationf("file contains no locker ids")
	}
	return wanted, nil
}

// Template returns the locker import template
func (s *LockerService) Template(format string) (*TableFile, error) {
	headers := make([]string, 0, len(models.AllLockerKinds))
	sample := make([]string, 0, len(models.AllLockerKinds))
	for _, kind := range models.AllLockerKinds {
		headers = append(headers, lockers.KindLabel(kind))
		sample = append(sample, lockers.FormatID(kind, 1))
	}
	return RenderTable(format, "locker_template", "Lockers", headers, [][]string{sample})
}

// CaptureSnapshot stores the current occupancy with a source tag
func (s *LockerService) CaptureSnapshot(ctx context.Context, source string) (*models.LockerSnapshot, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		source = "Manual"
	}
	return s.SnapshotRepo.Capture(ctx, source)
}

// Snapshots returns the newest snapshots, 100 by default
func (s *LockerService) Snapshots(ctx context.Context, limit int) ([]*models.LockerSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		limit = maxSnapshotLimit
	}
	return s.SnapshotRepo.List(ctx, limit)
}

// OccupancyChanged runs after every committed occupancy change: caches are
// dropped, a snapshot is taken, gauges refreshed and clients notified.
// Failures here never undo the change, they are only logged.
func (s *LockerService) OccupancyChanged(ctx context.Context, source string) {
	cache.InvalidateLockerCaches(ctx)
	cache.InvalidateProcessCaches(ctx)

	if _, err := s.SnapshotRepo.Capture(ctx, source); err != nil {
		logger.ErrorLog(ctx, err, "[Locker] snapshot %s failed", source)
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		logger.ErrorLog(ctx, err, "[Locker] summary after %s failed", source)
		return
	}
	for _, k := range summary.Kinds {
		metrics.LockerOccupied.WithLabelValues(k.Location, k.Type).Set(float64(k.Occupied))
		metrics.LockerTotal.WithLabelValues(k.Location, k.Type).Set(float64(k.Total))
	}
	s.Hub.Publish(live.OccupancyEvent{Reason: source, Summary: summary})
}

func validateKindFilter(location, lockerType string) error {
	if location != "" && location != models.LocationFloor1 && location != models.LocationFloor2 {
		return validationf("unknown location %s", location)
	}
	if lockerType != "" && lockerType != models.LockerTypeClothes && lockerType != models.LockerTypeShoe {
		return validationf("unknown locker type %s", lockerType)
	}
	return nil
}
