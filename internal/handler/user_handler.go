package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/service"
	apperrors "volunteerhub/pkg/errors"
	"volunteerhub/pkg/logger"
)

// UserHandler serves the caller-scoped endpoints: registration history,
// created activities, statistics, and the check-in/complete transitions
type UserHandler struct {
	users         *service.UserService
	activities    *service.ActivityService
	registrations *service.RegistrationService
	logger        *logger.Logger
}

// NewUserHandler constructs a UserHandler
func NewUserHandler(
	users *service.UserService,
	activities *service.ActivityService,
	registrations *service.RegistrationService,
	logger *logger.Logger,
) *UserHandler {
	return &UserHandler{
		users:         users,
		activities:    activities,
		registrations: registrations,
		logger:        logger,
	}
}

// MyRegistrations handles GET /api/users/my-registrations
func (h *UserHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	filter := domain.RegistrationFilter{
		Status:  r.URL.Query().Get("status"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 10),
	}

	page, err := h.registrations.MyRegistrations(r.Context(), userID, filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// MyActivities handles GET /api/users/my-activities
func (h *UserHandler) MyActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	page, err := h.activities.ListByCreator(r.Context(), userID,
		queryInt(r, "page", 1), queryInt(r, "per_page", 10))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// Statistics handles GET /api/users/statistics
func (h *UserHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	stats, err := h.users.Statistics(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// CheckIn handles POST /api/users/check-in/{registrationID}
func (h *UserHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	registrationID, err := urlParamID(r, "registrationID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	reg, err := h.registrations.CheckIn(r.Context(), registrationID, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Check-in successful",
		"registration": reg,
	})
}

// Complete handles POST /api/users/complete/{registrationID}
func (h *UserHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	registrationID, err := urlParamID(r, "registrationID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// Rating and feedback are optional; an empty body completes without them.
	var req domain.CompleteRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	reg, err := h.registrations.Complete(r.Context(), registrationID, userID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Activity completed successfully",
		"registration": reg,
	})
}
