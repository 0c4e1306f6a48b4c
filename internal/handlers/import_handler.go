package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"
)

type ImportHandler struct {
	Service *services.ImportService
}

func NewImportHandler(s *services.ImportService) *ImportHandler {
	return &ImportHandler{Service: s}
}

// DownloadEmployeeTemplate handles GET /api/employees/template?format=csv|xlsx
func (h *ImportHandler) DownloadEmployeeTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.EmployeeTemplate(r.URL.Query().Get("format"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	sendTable(w, f)
}

// ImportEmployees handles a multipart csv or xlsx upload in field "file"
func (h *ImportHandler) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := readUpload(w, r)
	if !ok {
		return
	}
	res, err := h.Service.ImportEmployees(r.Context(), filename, data, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *ImportHandler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.ExportEmployees(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	sendTable(w, f)
}
