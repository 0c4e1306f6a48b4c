package services

import (
	"bytes"
	"context"
	"fmt"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

const reportSnapshotRows = 20

// OccupancyReportData holds everything printed on the occupancy report
type OccupancyReportData struct {
	Summary   *models.LockerSummary
	Blocks    []models.LockerHeatBlock
	Snapshots []*models.LockerSnapshot
}

// ReportService handles report generation
type ReportService struct {
	Lockers *LockerService
}

func NewReportService(lockerService *LockerService) *ReportService {
	return &ReportService{Lockers: lockerService}
}

// GetOccupancyReportData collects the summary, heat blocks of both floors and
// the latest snapshots
func (s *ReportService) GetOccupancyReportData(ctx context.Context) (*OccupancyReportData, error) {
	summary, err := s.Lockers.Summary(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := s.Lockers.HeatBlocks(ctx, "")
	if err != nil {
		return nil, err
	}
	snapshots, err := s.Lockers.Snapshots(ctx, reportSnapshotRows)
	if err != nil {
		return nil, err
	}
	return &OccupancyReportData{Summary: summary, Blocks: blocks, Snapshots: snapshots}, nil
}

// LockerOccupancyPDF renders the A4 occupancy report
func (s *ReportService) LockerOccupancyPDF(ctx context.Context) ([]byte, error) {
	data, err := s.GetOccupancyReportData(ctx)
	if err != nil {
		return nil, err
	}
	return GenerateOccupancyPDF(data)
}

// kindName is the ASCII label of a kind. The core PDF fonts carry no CJK glyphs.
func kindName(location, lockerType string) string {
	return location + " " + lockerType
}

func percent(occupied, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(occupied)*100/float64(total))
}

// GenerateOccupancyPDF lays out the report
func GenerateOccupancyPDF(data *OccupancyReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "CleanGuard - Locker Occupancy Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DateTimeLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Kind", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Occupied", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Rate", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, k := range data.Summary.Kinds {
		pdf.CellFormat(70, 6, kindName(k.Location, k.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", k.Occupied), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", k.Total), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, percent(k.Occupied, k.Total), "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "All lockers", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", data.Summary.TotalOccupied), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", data.Summary.TotalLockers), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, percent(data.Summary.TotalOccupied, data.Summary.TotalLockers), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Heat blocks
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Heat Blocks", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Kind", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Region", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Occupied", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Abnormal", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Level", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, b := range data.Blocks {
		switch b.HeatLevel {
		case lockers.HeatHigh:
			pdf.SetFillColor(255, 200, 200)
		case lockers.HeatWarm:
			pdf.SetFillColor(255, 220, 180)
		case lockers.HeatMedium:
			pdf.SetFillColor(255, 240, 200)
		default:
			pdf.SetFillColor(200, 255, 200)
		}
		pdf.CellFormat(40, 6, kindName(b.Location, b.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, b.RegionName, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d / %d", b.Occupied, b.Total), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f%%", b.OccupancyRate*100), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", b.AbnormalCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, b.HeatLevel, "1", 1, "C", true, 0, "")
	}
	pdf.Ln(5)

	// Snapshots, newest first
	if len(data.Snapshots) > 0 {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Recent Snapshots", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(40, 7, "Time", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Source", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "1F clothes", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "1F shoe", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "2F clothes", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "2F shoe", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, snap := range data.Snapshots {
			pdf.CellFormat(40, 6, timeutil.ToCST(snap.SnapshotTime).Format(timeutil.DateTimeLayout), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, snap.Source, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d/%d", snap.OneFClothesOccupied, snap.OneFClothesTotal), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d/%d", snap.OneFShoeOccupied, snap.OneFShoeTotal), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d/%d", snap.TwoFClothesOccupied, snap.TwoFClothesTotal), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d/%d", snap.TwoFShoeOccupied, snap.TwoFShoeTotal), "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
