// Package routes defines the HTTP routes for the WhatsApp AI gateway.
package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wagateway/gateway/internal/api/handlers"
	"github.com/wagateway/gateway/internal/api/middleware"
)

// Features switches optional middleware on or off.
type Features struct {
	Logging         bool
	RateLimiting    bool
	CORS            bool
	Compression     bool
	SecurityHeaders bool
}

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	ChatHandler      *handlers.ChatHandler
	MessagingHandler *handlers.MessagingHandler
	CacheHandler     *handlers.CacheHandler

	Features   Features
	CORSOrigin string
	RateLimit  middleware.RateLimitConfig
	// ErrorMessage is shown for unexpected failures.
	ErrorMessage string
}

// Endpoints lists the public routes, reported by the 404 handler.
var Endpoints = []string{
	"GET /",
	"GET /api/status",
	"POST /api/chat",
	"POST /api/webhook",
	"POST /api/send",
	"POST /api/cache/clear",
	"GET /api/analytics",
	"GET /docs/index.html",
}

// Setup configures middleware and routes on the Gin engine.
// Panic recovery is always installed; everything else follows cfg.Features.
func Setup(r *gin.Engine, cfg *Config) {
	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware(cfg.ErrorMessage)

	r.Use(loggingMw.RequestID())
	if cfg.Features.Logging {
		r.Use(loggingMw.Logger())
	}
	r.Use(errorMw.Recovery())
	if cfg.Features.SecurityHeaders {
		r.Use(middleware.SecurityHeaders())
	}
	if cfg.Features.CORS {
		r.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig(cfg.CORSOrigin)))
	}
	if cfg.Features.Compression {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	r.GET("/", cfg.HealthHandler.Health)

	api := r.Group("/api")
	if cfg.Features.RateLimiting {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit).Handler())
	}
	{
		api.GET("/status", cfg.HealthHandler.Status)
		api.GET("/analytics", cfg.HealthHandler.Analytics)

		api.POST("/chat", cfg.ChatHandler.Chat)
		api.POST("/webhook", cfg.ChatHandler.Webhook)

		api.POST("/send", cfg.MessagingHandler.Send)

		api.POST("/cache/clear", cfg.CacheHandler.Clear)
	}

	// Swagger documentation endpoint
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(middleware.NotFound(Endpoints))
}
