package handlers

import (
	"net/http"

	"cleanguard-backend/internal/services"
	"cleanguard-backend/internal/timeutil"
	"cleanguard-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// OccupancyPDF handles GET /api/reports/occupancy.pdf
func (h *ReportHandler) OccupancyPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.LockerOccupancyPDF(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.Attachment(w, "application/pdf", "locker_occupancy_"+timeutil.Now().Format(timeutil.CompactDayLayout)+".pdf", pdf)
}
