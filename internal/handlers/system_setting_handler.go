package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SystemSettingHandler struct {
	Service *services.SystemSettingService
}

func NewSystemSettingHandler(service *services.SystemSettingService) *SystemSettingHandler {
	return &SystemSettingHandler{Service: service}
}

func (h *SystemSettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Service.GetSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *SystemSettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.ListSettings(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

func (h *SystemSettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.Service.UpdateSetting(r.Context(), mux.Vars(r)["key"], req.SettingValue, userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Setting updated successfully"})
}
