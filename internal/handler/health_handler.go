package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
	"github.com/emanuelbartolo/BoardGameApp/pkg/redisclient"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db      *database.PostgresDB
	redis   *redisclient.Client
	version string
}

// NewHealthHandler creates a new health handler. redis may be nil when the
// service runs with the in-process notifier.
func NewHealthHandler(db *database.PostgresDB, redis *redisclient.Client, version string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response.Success(gin.H{
		"healthy": healthy,
		"version": h.version,
		"checks":  checks,
	}))
}
