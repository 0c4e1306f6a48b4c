package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	files, err := h.Service.ListBackups(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, files)
}

// RunBackup starts a backup and waits for it to finish
func (h *BackupHandler) RunBackup(w http.ResponseWriter, r *http.Request) {
	file, err := h.Service.RunBackup(r.Context(), middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, file)
}
