package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	query usecase.QueryUsecase
}

// NewHealthHandler creates a health handler. query may be nil until the
// dataset finishes loading.
func NewHealthHandler(query usecase.QueryUsecase) *HealthHandler {
	return &HealthHandler{query: query}
}

// Ping answers a basic reachability check.
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness reports ready once the survey table is loaded.
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	if h.query == nil || h.query.Len() == 0 {
		c.JSON(503, utils.H{
			"status":  "not_ready",
			"dataset": "not loaded",
		})
		return
	}

	c.JSON(200, utils.H{
		"status":  "ready",
		"dataset": "loaded",
		"rows":    h.query.Len(),
	})
}

// Liveness reports the process is alive.
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status": "alive",
	})
}
