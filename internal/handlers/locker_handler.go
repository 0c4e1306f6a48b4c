package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type LockerHandler struct {
	Service *services.LockerService
}

func NewLockerHandler(s *services.LockerService) *LockerHandler {
	return &LockerHandler{Service: s}
}

// ListLockers handles GET /api/lockers?location=&type=&abnormal=1
func (h *LockerHandler) ListLockers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	abnormal := q.Get("abnormal")
	f := models.LockerFilter{
		Location:     q.Get("location"),
		Type:         q.Get("type"),
		AbnormalOnly: abnormal == "1" || abnormal == "true",
	}
	list, err := h.Service.Query(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// GetAvailable handles GET /api/lockers/available?location=&type=&selected=
func (h *LockerHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := h.Service.AvailableIncluding(r.Context(), q.Get("location"), q.Get("type"), q.Get("selected"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, ids)
}

func (h *LockerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// GetHeatBlocks handles GET /api/lockers/heat?floor=
func (h *LockerHandler) GetHeatBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.Service.HeatBlocks(r.Context(), r.URL.Query().Get("floor"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, blocks)
}

func (h *LockerHandler) UpdateRemark(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLockerRemarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.Service.UpdateRemark(r.Context(), mux.Vars(r)["id"], req.Remark, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Remark updated successfully"})
}

// ImportLockers handles a multipart upload that rebuilds the locker list
func (h *LockerHandler) ImportLockers(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := readUpload(w, r)
	if !ok {
		return
	}
	res, err := h.Service.Import(r.Context(), filename, data, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *LockerHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.Template(r.URL.Query().Get("format"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	sendTable(w, f)
}

func (h *LockerHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Service.Snapshots(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, snaps)
}

func (h *LockerHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.CaptureSnapshot(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, snap)
}
