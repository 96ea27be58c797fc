package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks backing-store liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /health. With a nil pinger (fully simulated
// store) it only reports process liveness.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "simulated"})
}
