package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shareconnect-go/internal/app"
	"go.uber.org/zap"
)

// ShareHandler handles share requests
type ShareHandler struct {
	share  *app.ShareService
	logger *zap.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(share *app.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		share:  share,
		logger: logger,
	}
}

// ShareRequest represents a request to send a link to a back-end
type ShareRequest struct {
	URL       string `json:"url"`
	ProfileID string `json:"profile_id,omitempty"`
}

// ShareResponse reports the outcome of one dispatch
type ShareResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	HistoryID   uint   `json:"history_id"`
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`
}

// Share handles POST /api/v1/share. A back-end rejection is reported with
// success=false and status 200; only request and storage problems use error
// status codes.
func (h *ShareHandler) Share(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.share.Share(c.Request.Context(), req.URL, req.ProfileID)
	if err != nil {
		respondError(c, h.logger, "Failed to share link", err)
		return
	}

	resp := ShareResponse{
		Success:     outcome.Result.OK,
		Message:     outcome.Result.Message,
		ProfileID:   outcome.Profile.ID,
		ProfileName: outcome.Profile.Name,
	}
	if outcome.History != nil {
		resp.HistoryID = outcome.History.ID
	}
	c.JSON(http.StatusOK, resp)
}
