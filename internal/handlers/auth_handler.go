package handlers

import (
	"net/http"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"
)

type AuthHandler struct {
	Users *services.UserService
	TOTP  *services.TOTPService
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService) *AuthHandler {
	return &AuthHandler{Users: users, TOTP: totp}
}

// Login returns a session token, or a pending token when 2FA is enabled
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, pending, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if pending != nil {
		utils.JSON(w, http.StatusOK, pending)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// VerifyTOTP completes a two-step login
func (h *AuthHandler) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.TOTP.VerifyLogin(r.Context(), &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	setup, err := h.TOTP.GenerateSetup(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, setup)
}

func (h *AuthHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.TOTP.Enable(r.Context(), userID, req.Code); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA enabled"})
}

func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.TOTP.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA disabled"})
}
