package services

import (
	"bytes"
	"testing"
	"time"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOccupancyPDF(t *testing.T) {
	summary := lockers.CompleteSummary([]models.KindSummary{
		{Location: "1F", Type: "clothes", Occupied: 45, Total: 60},
	})
	data := &OccupancyReportData{
		Summary: summary,
		Blocks: []models.LockerHeatBlock{
			{Location: "1F", Type: "clothes", RegionName: "1-10", Occupied: 10, Total: 10, OccupancyRate: 1, HeatLevel: lockers.HeatHigh},
			{Location: "1F", Type: "clothes", RegionName: "11-20", Occupied: 2, Total: 10, OccupancyRate: 0.2, HeatLevel: lockers.HeatLow},
		},
		Snapshots: []*models.LockerSnapshot{
			{SnapshotTime: time.Now(), Source: "Manual", OneFClothesOccupied: 45, OneFClothesTotal: 60},
		},
	}

	pdf, err := GenerateOccupancyPDF(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", percent(0, 0))
	assert.Equal(t, "75.0%", percent(45, 60))
}
