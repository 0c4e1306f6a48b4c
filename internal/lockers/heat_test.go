package lockers

import (
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatLevel(t *testing.T) {
	assert.Equal(t, HeatHigh, HeatLevel(0.95))
	assert.Equal(t, HeatHigh, HeatLevel(0.9))
	assert.Equal(t, HeatWarm, HeatLevel(0.7))
	assert.Equal(t, HeatMedium, HeatLevel(0.5))
	assert.Equal(t, HeatLow, HeatLevel(0.49))
	assert.Equal(t, HeatLow, HeatLevel(0))
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "01-10", RegionName(1))
	assert.Equal(t, "01-10", RegionName(10))
	assert.Equal(t, "11-20", RegionName(11))
	assert.Equal(t, "51-60", RegionName(60))
}

func TestBuildHeatBlocks(t *testing.T) {
	var states []LockerState
	for i := 1; i <= 20; i++ {
		states = append(states, LockerState{
			LockerID:   FormatID(models.LockerKind{Location: "1F", Type: "clothes"}, i),
			Location:   "1F",
			Type:       "clothes",
			IsOccupied: i <= 9,
		})
	}
	states[0].Remark = "door hinge broken"
	states = append(states,
		LockerState{LockerID: "2F-S-01", Location: "2F", Type: "shoe", IsOccupied: true},
		LockerState{LockerID: "SPARE-1", Location: "2F", Type: "shoe"},
	)

	blocks := BuildHeatBlocks(states, "")
	require.Len(t, blocks, 4)

	assert.Equal(t, "01-10", blocks[0].RegionName)
	assert.Equal(t, 9, blocks[0].Occupied)
	assert.Equal(t, 10, blocks[0].Total)
	assert.Equal(t, 0.9, blocks[0].OccupancyRate)
	assert.Equal(t, HeatHigh, blocks[0].HeatLevel)
	assert.Equal(t, 1, blocks[0].AbnormalCount)

	assert.Equal(t, "11-20", blocks[1].RegionName)
	assert.Equal(t, 0, blocks[1].Occupied)
	assert.Equal(t, HeatLow, blocks[1].HeatLevel)

	assert.Equal(t, "2F", blocks[2].Location)
	assert.Equal(t, "01-10", blocks[2].RegionName)
	assert.Equal(t, "other", blocks[3].RegionName)

	floor2 := BuildHeatBlocks(states, "2F")
	assert.Len(t, floor2, 2)
}

func TestCompleteSummary(t *testing.T) {
	s := CompleteSummary([]models.KindSummary{
		{Location: "2F", Type: "shoe", Occupied: 3, Total: 60},
		{Location: "1F", Type: "clothes", Occupied: 10, Total: 60},
	})

	require.Len(t, s.Kinds, 4)
	assert.Equal(t, "1F", s.Kinds[0].Location)
	assert.Equal(t, 10, s.Kinds[0].Occupied)
	assert.Equal(t, 0, s.Kinds[1].Total)
	assert.Equal(t, 13, s.TotalOccupied)
	assert.Equal(t, 120, s.TotalLockers)
	assert.Equal(t, 3, s.Get("2F", "shoe").Occupied)
}
