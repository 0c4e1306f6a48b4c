package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type LabelHandler struct {
	Service *services.LabelService
}

func NewLabelHandler(s *services.LabelService) *LabelHandler {
	return &LabelHandler{Service: s}
}

// PreviewLabel returns the QR payload without printing
func (h *LabelHandler) PreviewLabel(w http.ResponseWriter, r *http.Request) {
	preview, err := h.Service.Preview(r.Context(), mux.Vars(r)["empNo"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, preview)
}

func (h *LabelHandler) PrintLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Copies int `json:"copies"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	preview, err := h.Service.Print(r.Context(), mux.Vars(r)["empNo"], req.Copies, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Label sent to printer",
		"label":   preview,
	})
}
