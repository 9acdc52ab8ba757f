package handler

import (
	"net/http"
	"time"

	"volunteerhub/pkg/database"
	"volunteerhub/pkg/logger"
	"volunteerhub/pkg/redis"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db     *database.PostgresDB
	redis  *redis.Client
	logger *logger.Logger
}

// NewHealthHandler constructs a HealthHandler. The redis client may be nil
// when caching is disabled.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, logger: logger}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.Health(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			checks["redis"] = "unhealthy"
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":    statusWord(status),
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
