package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func NewEmployeeHandler(s *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

// ListEmployees handles GET /api/employees?keyword=
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.Query(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), mux.Vars(r)["empNo"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) GetLockerInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.LockerInfo(r.Context(), mux.Vars(r)["empNo"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, info)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := h.Service.Add(r.Context(), in, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, e)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := h.Service.Update(r.Context(), mux.Vars(r)["empNo"], in, middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) ResignEmployee(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Resign(r.Context(), mux.Vars(r)["empNo"], middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *EmployeeHandler) RestoreEmployee(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Restore(r.Context(), mux.Vars(r)["empNo"], middleware.Operator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["empNo"], middleware.Operator(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}
