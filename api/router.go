package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/shareconnect-go/api/handlers"
	"github.com/yourusername/shareconnect-go/api/middleware"
	"github.com/yourusername/shareconnect-go/internal/app"
	"github.com/yourusername/shareconnect-go/pkg/logger"
)

// Services bundles the application services exposed over HTTP
type Services struct {
	Profiles *app.ProfileManager
	Share    *app.ShareService
	History  *app.HistoryService
}

// SetupRouter sets up the HTTP router
func SetupRouter(services Services, logAdapter *logger.LoggerAdapter, logsDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logAdapter))
	router.Use(middleware.Recovery(logAdapter))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(services.Profiles)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	log := logAdapter.General()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		profileHandler := handlers.NewProfileHandler(services.Profiles, services.Share, log)
		profiles := v1.Group("/profiles")
		{
			profiles.GET("", profileHandler.ListProfiles)
			profiles.POST("", profileHandler.CreateProfile)
			profiles.GET("/default", profileHandler.GetDefault)
			profiles.GET("/service-types", profileHandler.ServiceTypes)
			profiles.GET("/torrent-clients", profileHandler.TorrentClients)
			profiles.GET("/compatible", profileHandler.CompatibleProfiles)
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.PUT("/:id", profileHandler.UpdateProfile)
			profiles.DELETE("/:id", profileHandler.DeleteProfile)
			profiles.POST("/:id/default", profileHandler.SetDefault)
		}

		shareHandler := handlers.NewShareHandler(services.Share, log)
		v1.POST("/share", shareHandler.Share)

		historyHandler := handlers.NewHistoryHandler(services.History, log)
		history := v1.Group("/history")
		{
			history.GET("", historyHandler.ListHistory)
			history.DELETE("", historyHandler.ClearHistory)
			history.GET("/filters", historyHandler.GetFilters)
			history.GET("/:id", historyHandler.GetHistoryItem)
			history.DELETE("/:id", historyHandler.DeleteHistoryItem)
		}

		// Log endpoints
		logHandler := handlers.NewLogHandler(logsDir)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/:category", logHandler.GetLogs)
			logs.GET("/:category/search", logHandler.SearchLogs)
			logs.GET("/:category/export", logHandler.ExportLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
