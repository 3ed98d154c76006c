package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wagateway/gateway/internal/api/dto"
	"github.com/wagateway/gateway/internal/api/middleware"
	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/services/replycache"
)

// CacheHandler serves the cache administration endpoint.
type CacheHandler struct {
	cache replycache.Service
}

// NewCacheHandler creates a new CacheHandler. cache is nil when caching is disabled.
func NewCacheHandler(cache replycache.Service) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Clear handles POST /api/cache/clear.
// @Summary Clear the reply cache
// @Tags Cache
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/cache/clear [post]
func (h *CacheHandler) Clear(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Cache is disabled"})
		return
	}

	removed, err := h.cache.FlushAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, domainerrors.NewInternalError("failed to clear cache", err))
		return
	}

	logger := middleware.GetRequestLogger(c)
	logger.Info().Int64("removed", removed).Msg("reply cache cleared")
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: fmt.Sprintf("Cache cleared successfully (%d entries removed)", removed),
	})
}
