package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ProcessHandler struct {
	Service *services.ProcessService
}

func NewProcessHandler(s *services.ProcessService) *ProcessHandler {
	return &ProcessHandler{Service: s}
}

// ListNames handles GET /api/processes/names
func (h *ProcessHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.Service.Names(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, names)
}

// ListProcesses returns names with employee usage counts
func (h *ProcessHandler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Query(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *ProcessHandler) CreateProcess(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProcessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.Add(r.Context(), req.Name, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *ProcessHandler) DeleteProcess(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["name"], middleware.Operator(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Process deleted successfully"})
}

func (h *ProcessHandler) RenameProcess(w http.ResponseWriter, r *http.Request) {
	var req models.RenameProcessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.Service.Rename(r.Context(), mux.Vars(r)["name"], req.NewName, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Process renamed successfully"})
}

// ImportProcesses accepts {"names": [...]} or {"text": "..."} pasted from a spreadsheet
func (h *ProcessHandler) ImportProcesses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.ImportProcessesRequest
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	names := append(req.Names, services.SplitNames(req.Text)...)
	res, err := h.Service.Import(r.Context(), names, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}
