package lockers

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"cleanguard-backend/internal/models"
)

const (
	RegionSize = 10

	HeatHigh   = "high"
	HeatWarm   = "warm"
	HeatMedium = "medium"
	HeatLow    = "low"
)

// HeatLevel buckets an occupancy rate for the heat map
func HeatLevel(rate float64) string {
	switch {
	case rate >= 0.9:
		return HeatHigh
	case rate >= 0.7:
		return HeatWarm
	case rate >= 0.5:
		return HeatMedium
	default:
		return HeatLow
	}
}

// RegionName returns the run of RegionSize numbers containing n, e.g. 11-20
func RegionName(n int) string {
	if n < 1 {
		n = 1
	}
	start := ((n-1)/RegionSize)*RegionSize + 1
	return fmt.Sprintf("%02d-%02d", start, start+RegionSize-1)
}

// BuildHeatBlocks groups lockers into regions per kind. Lockers whose id
// does not follow the standard format fall into an "other" region.
// floor filters by location when non-empty.
func BuildHeatBlocks(states []LockerState, floor string) []models.LockerHeatBlock {
	type key struct {
		location, lockerType, region string
		start                        int
	}
	blocks := make(map[key]*models.LockerHeatBlock)

	for _, s := range states {
		if floor != "" && s.Location != floor {
			continue
		}
		region, start := "other", math.MaxInt32
		if _, n, err := ParseID(s.LockerID); err == nil {
			region = RegionName(n)
			start = ((n-1)/RegionSize)*RegionSize + 1
		}
		k := key{s.Location, s.Type, region, start}
		b, ok := blocks[k]
		if !ok {
			b = &models.LockerHeatBlock{Location: s.Location, Type: s.Type, RegionName: region}
			blocks[k] = b
		}
		b.Total++
		if s.IsOccupied {
			b.Occupied++
		}
		if strings.TrimSpace(s.Remark) != "" {
			b.AbnormalCount++
		}
	}

	keys := make([]key, 0, len(blocks))
	for k := range blocks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		if keys[i].lockerType != keys[j].lockerType {
			return keys[i].lockerType < keys[j].lockerType
		}
		return keys[i].start < keys[j].start
	})

	out := make([]models.LockerHeatBlock, 0, len(keys))
	for _, k := range keys {
		b := blocks[k]
		if b.Total > 0 {
			b.OccupancyRate = math.Round(float64(b.Occupied)/float64(b.Total)*1000) / 1000
		}
		b.HeatLevel = HeatLevel(b.OccupancyRate)
		out = append(out, *b)
	}
	return out
}

// CompleteSummary fills in missing kinds with zero counts and totals
func CompleteSummary(kinds []models.KindSummary) *models.LockerSummary {
	summary := &models.LockerSummary{}
	for _, k := range models.AllLockerKinds {
		ks := models.KindSummary{Location: k.Location, Type: k.Type}
		for _, got := range kinds {
			if got.Location == k.Location && got.Type == k.Type {
				ks.Occupied = got.Occupied
				ks.Total = got.Total
			}
		}
		summary.Kinds = append(summary.Kinds, ks)
		summary.TotalOccupied += ks.Occupied
		summary.TotalLockers += ks.Total
	}
	return summary
}
