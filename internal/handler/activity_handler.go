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

// ActivityHandler serves activity listing, creation, and the registration
// entry points scoped to an activity
type ActivityHandler struct {
	activities    *service.ActivityService
	registrations *service.RegistrationService
	logger        *logger.Logger
}

// NewActivityHandler constructs an ActivityHandler
func NewActivityHandler(activities *service.ActivityService, registrations *service.RegistrationService, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities:    activities,
		registrations: registrations,
		logger:        logger,
	}
}

// List handles GET /api/activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ActivityFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		Page:     queryInt(r, "page", 1),
		PerPage:  queryInt(r, "per_page", 10),
	}
	// Listings default to open activities; pass status=all for everything.
	if filter.Status == "" {
		filter.Status = domain.ActivityStatusActive
	} else if filter.Status == "all" {
		filter.Status = ""
	}

	page, err := h.activities.List(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// Get handles GET /api/activities/{activityID}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activityID, err := urlParamID(r, "activityID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	activity, err := h.activities.Get(r.Context(), activityID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"activity": activity})
}

// Create handles POST /api/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	activity, err := h.activities.Create(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Activity created successfully",
		"activity": activity,
	})
}

// Register handles POST /api/activities/{activityID}/register
func (h *ActivityHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	activityID, err := urlParamID(r, "activityID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// The body is optional; an empty body means no notes.
	var req domain.RegisterActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	reg, err := h.registrations.Register(r.Context(), userID, activityID, req.Notes)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Registration successful",
		"registration": reg,
	})
}

// Unregister handles DELETE /api/activities/{activityID}/register
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, h.logger, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	activityID, err := urlParamID(r, "activityID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.registrations.Cancel(r.Context(), userID, activityID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Registration cancelled successfully",
	})
}

// Roster handles GET /api/activities/{activityID}/registrations
func (h *ActivityHandler) Roster(w http.ResponseWriter, r *http.Request) {
	activityID, err := urlParamID(r, "activityID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	regs, err := h.activities.Roster(r.Context(), activityID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"registrations": regs,
		"total":         len(regs),
	})
}
