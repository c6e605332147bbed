package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepdex/prepdex-backend/internal/config"
	"github.com/prepdex/prepdex-backend/internal/handler"
	"github.com/prepdex/prepdex-backend/internal/middleware"
	"github.com/prepdex/prepdex-backend/internal/response"
	"github.com/prepdex/prepdex-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Device       *handler.DeviceHandler
	Catalog      *handler.CatalogHandler
	Session      *handler.SessionHandler
	Attempt      *handler.AttemptHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	deviceService *service.DeviceService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for registration (30 requests per minute per IP).
	registerLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Device Group (Registration Public, Rate Limited) ───────────
	devices := router.Group("/api/v1/devices")
	{
		devices.POST("/register", registerLimiter.Middleware(), handlers.Device.Register)
		devices.PUT("/fcm-token", middleware.RequireDeviceToken(deviceService), handlers.Device.UpdateFCMToken)
	}

	// ─── 2. Catalog Group (Device Token) ───────────────────────────────
	catalog := router.Group("/api/v1/catalog")
	catalog.Use(middleware.RequireDeviceToken(deviceService))
	{
		catalog.GET("/courses/:course/topics", handlers.Catalog.Topics)
		catalog.GET("/topics/:topicId/tests", handlers.Catalog.TestPapers)
		catalog.GET("/topics/:topicId/notes", handlers.Catalog.Notes)
		catalog.GET("/topics/:topicId/videos", handlers.Catalog.VideoNotes)
		catalog.GET("/newly-added", handlers.Catalog.NewlyAdded)
		catalog.GET("/search", handlers.Catalog.Search)
	}

	// ─── 3. Session Group (Device Token) ───────────────────────────────
	sessions := router.Group("/api/v1/sessions")
	sessions.Use(middleware.RequireDeviceToken(deviceService))
	{
		sessions.POST("", handlers.Session.Start)
		sessions.GET("/:id", handlers.Session.Get)
		sessions.PUT("/:id/answer", handlers.Session.SelectAnswer)
		sessions.DELETE("/:id/answer", handlers.Session.ClearAnswer)
		sessions.POST("/:id/next", handlers.Session.Next)
		sessions.POST("/:id/previous", handlers.Session.Previous)
		sessions.POST("/:id/jump", handlers.Session.Jump)
		sessions.POST("/:id/end", handlers.Session.End)
		sessions.DELETE("/:id", handlers.Session.Dismiss)
		sessions.GET("/:id/result", handlers.Session.Result)
	}

	// ─── 4. History Groups (Device Token) ──────────────────────────────
	attempts := router.Group("/api/v1/attempts")
	attempts.Use(middleware.RequireDeviceToken(deviceService))
	{
		attempts.GET("", handlers.Attempt.History)
	}

	notifications := router.Group("/api/v1/notifications")
	notifications.Use(middleware.RequireDeviceToken(deviceService))
	{
		notifications.POST("", handlers.Notification.Ingest)
		notifications.GET("", handlers.Notification.History)
	}

	// ─── 5. WebSocket Group (Device WS Auth) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireDeviceWSAuth(deviceService))
	{
		ws.GET("/sessions/:id/stream", handlers.WS.SessionStream)
	}

	return router
}
