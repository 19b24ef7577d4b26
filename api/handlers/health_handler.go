package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shareconnect-go/internal/app"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	profiles *app.ProfileManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(profiles *app.ProfileManager) *HealthHandler {
	return &HealthHandler{
		profiles: profiles,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// Ready handles GET /ready. The service is ready once the profile store
// can be read.
func (h *HealthHandler) Ready(c *gin.Context) {
	profiles, err := h.profiles.List()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"profiles": len(profiles),
	})
}
