// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wagateway/gateway/internal/api/dto"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/services/session"
)

// HealthHandler serves the health, status and analytics endpoints.
type HealthHandler struct {
	state       session.State
	cache       replycache.Service
	version     string
	environment string
	startedAt   time.Time
	now         func() time.Time
}

// HealthConfig holds the dependencies of HealthHandler.
type HealthConfig struct {
	Session session.State
	// Cache may be nil when caching is disabled.
	Cache       replycache.Service
	Version     string
	Environment string
	StartedAt   time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	startedAt := cfg.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return &HealthHandler{
		state:       cfg.Session,
		cache:       cfg.Cache,
		version:     cfg.Version,
		environment: cfg.Environment,
		startedAt:   startedAt,
		now:         time.Now,
	}
}

// Health handles the / endpoint.
// @Summary Health check
// @Description Returns liveness, the WhatsApp bot status and the number of users seen
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		BotStatus:   h.state.Status().String(),
		Timestamp:   h.now().UTC(),
		Version:     h.version,
		ActiveUsers: h.state.ActiveUserCount(),
	})
}

// Status handles the /api/status endpoint.
// @Summary Service status
// @Description Returns WhatsApp session, process and cache details
// @Tags Health
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /api/status [get]
func (h *HealthHandler) Status(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := h.cacheStats(c.Request.Context())

	c.JSON(http.StatusOK, dto.StatusResponse{
		WhatsApp: dto.WhatsAppStatus{
			Status:         h.state.Status().String(),
			ConnectedUsers: h.state.ActiveUserCount(),
		},
		Server: dto.ServerStatus{
			Uptime: h.uptime(),
			Memory: dto.MemoryStats{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				HeapInUse:  mem.HeapInuse,
				NumGC:      mem.NumGC,
				Goroutines: runtime.NumGoroutine(),
			},
			Environment: h.environment,
		},
		Cache: dto.CacheStatus{
			Keys:  stats.Keys,
			Stats: stats,
		},
	})
}

// Analytics handles the /api/analytics endpoint.
// @Summary Usage analytics
// @Description Returns user, uptime and cache counters
// @Tags Health
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Router /api/analytics [get]
func (h *HealthHandler) Analytics(c *gin.Context) {
	stats := h.cacheStats(c.Request.Context())

	c.JSON(http.StatusOK, dto.AnalyticsResponse{
		TotalUsers:  h.state.ActiveUserCount(),
		Uptime:      h.uptime(),
		CacheHits:   stats.Hits,
		CacheMisses: stats.Misses,
		BotStatus:   h.state.Status().String(),
		Timestamp:   h.now().UTC(),
	})
}

func (h *HealthHandler) cacheStats(ctx context.Context) dto.CacheStats {
	if h.cache == nil {
		return dto.CacheStats{}
	}
	s := h.cache.Stats(ctx)
	return dto.CacheStats{Hits: s.Hits, Misses: s.Misses, Keys: s.Keys}
}

// uptime in seconds.
func (h *HealthHandler) uptime() float64 {
	return h.now().Sub(h.startedAt).Seconds()
}
