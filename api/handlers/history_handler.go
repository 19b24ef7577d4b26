package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shareconnect-go/internal/app"
	"github.com/yourusername/shareconnect-go/internal/domain"
	"go.uber.org/zap"
)

// HistoryHandler handles dispatch history requests
type HistoryHandler struct {
	history *app.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *app.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

func filterFromQuery(c *gin.Context) domain.HistoryFilter {
	return domain.HistoryFilter{
		ServiceProvider: c.Query("service_provider"),
		MediaType:       domain.MediaType(c.Query("media_type")),
		ServiceType:     c.Query("service_type"),
	}
}

func parseHistoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history id"})
		return 0, false
	}
	return uint(id), true
}

// ListHistory handles GET /api/v1/history
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	items, err := h.history.List(filterFromQuery(c))
	if err != nil {
		respondError(c, h.logger, "Failed to list history", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetFilters handles GET /api/v1/history/filters
func (h *HistoryHandler) GetFilters(c *gin.Context) {
	filters, err := h.history.Filters()
	if err != nil {
		respondError(c, h.logger, "Failed to get history filters", err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// GetHistoryItem handles GET /api/v1/history/:id
func (h *HistoryHandler) GetHistoryItem(c *gin.Context) {
	id, ok := parseHistoryID(c)
	if !ok {
		return
	}

	item, err := h.history.Get(id)
	if err != nil {
		respondError(c, h.logger, "Failed to get history item", err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteHistoryItem handles DELETE /api/v1/history/:id
func (h *HistoryHandler) DeleteHistoryItem(c *gin.Context) {
	id, ok := parseHistoryID(c)
	if !ok {
		return
	}

	if err := h.history.Delete(id); err != nil {
		respondError(c, h.logger, "Failed to delete history item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history item deleted"})
}

// ClearHistory handles DELETE /api/v1/history
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	filter := filterFromQuery(c)
	if err := h.history.Clear(filter); err != nil {
		respondError(c, h.logger, "Failed to clear history", err)
		return
	}

	h.logger.Info("History cleared",
		zap.String("service_provider", filter.ServiceProvider),
		zap.String("media_type", string(filter.MediaType)),
		zap.String("service_type", filter.ServiceType))
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
