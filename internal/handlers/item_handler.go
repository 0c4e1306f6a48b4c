package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ItemHandler struct {
	Service  *services.IssuedItemService
	Settings *services.SystemSettingService
}

func NewItemHandler(s *services.IssuedItemService, settings *services.SystemSettingService) *ItemHandler {
	return &ItemHandler{Service: s, Settings: settings}
}

func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Get(r.Context(), mux.Vars(r)["empNo"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

// ReplaceItems handles PUT /api/employees/{empNo}/items with the full new set
func (h *ItemHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceItemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := h.Service.Replace(r.Context(), mux.Vars(r)["empNo"], req.Items, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *ItemHandler) ParseRows(w http.ResponseWriter, r *http.Request) {
	var req models.ParseItemRowsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := services.ParseItemRows(req.Category, req.Text)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []models.IssuedItem{}
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *ItemHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := services.ItemTemplate(r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	sendTable(w, f)
}

func (h *ItemHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.Settings.ItemLimits(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, limits)
}

func (h *ItemHandler) SaveLimits(w http.ResponseWriter, r *http.Request) {
	var limits models.ItemCategoryLimits
	if !decodeJSON(w, r, &limits) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Settings.SaveItemLimits(r.Context(), limits, userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, limits)
}
