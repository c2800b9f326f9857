package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports the service as alive.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
