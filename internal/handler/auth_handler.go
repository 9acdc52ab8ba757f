package handler

import (
	"encoding/json"
	"net/http"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/service"
	apperrors "volunteerhub/pkg/errors"
	"volunteerhub/pkg/logger"
)

// AuthHandler serves account registration, login, and profile endpoints
type AuthHandler struct {
	auth   service.AuthService
	users  *service.UserService
	logger *logger.Logger
}

// NewAuthHandler constructs an AuthHandler
func NewAuthHandler(auth service.AuthService, users *service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	user, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"access_token": resp.AccessToken,
		"user":         resp.User,
	})
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
