package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"volunteerhub/internal/domain"
	apperrors "volunteerhub/pkg/errors"
	"volunteerhub/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps err onto the error taxonomy and writes the response.
// Internal failures are logged with their cause; the client only ever sees
// the stable type and message.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := mapError(err)
	if appErr.Type == apperrors.ErrorTypeInternal {
		log.WithError(err).Error("Request failed")
	}

	resp := &apperrors.ErrorResponse{}
	resp.Error.Type = appErr.Type
	resp.Error.Message = appErr.Message
	resp.Error.Details = appErr.Details
	resp.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, resp)
}

// mapError translates domain sentinels into AppErrors. Services may also
// return AppErrors directly (validation); those pass through unchanged.
func mapError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, domain.ErrActivityFull),
		errors.Is(err, domain.ErrActivityNotOpen),
		errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewAuthenticationError(err.Error())
	default:
		return apperrors.NewInternalError("Internal server error", err)
	}
}

// urlParamID parses a numeric URL parameter
func urlParamID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

// queryInt parses an integer query parameter with a fallback
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}
