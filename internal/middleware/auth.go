package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"volunteerhub/internal/service"
	"volunteerhub/pkg/errors"
	"volunteerhub/pkg/logger"

	"github.com/google/uuid"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserIDContextKey is the key for the authenticated user ID in context
	UserIDContextKey ContextKey = "user_id"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// Auth creates an authentication middleware. It validates the bearer token
// and stores the caller's user ID in the request context; handlers trust that
// ID without re-verification.
func Auth(authService service.AuthService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authorization header is required"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid authorization header format"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Token is required"), logger)
				return
			}

			ctx := r.Context()
			userID, err := authService.ValidateToken(ctx, token)
			if err != nil {
				logger.WithError(err).Warn("Token validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired token"), logger)
				return
			}

			ctx = context.WithValue(ctx, UserIDContextKey, userID)
			r = r.WithContext(ctx)

			logger.WithField("user_id", userID).Debug("User authenticated successfully")

			next.ServeHTTP(w, r)
		})
	}
}

// UserID extracts the authenticated user ID from the request context. The
// second return is false on unauthenticated requests.
func UserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(UserIDContextKey).(int64)
	return id, ok
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Warn("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	timestamp := time.Now().UTC().Format(time.RFC3339)
	w.Write([]byte(`{"error":{"type":"` + string(appErr.Type) + `","message":"` + appErr.Message + `","timestamp":"` + timestamp + `"}}`))
}
