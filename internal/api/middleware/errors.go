// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/wagateway/gateway/internal/api/dto"
	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
)

// DefaultErrorMessage is sent for unexpected failures when none is configured.
const DefaultErrorMessage = "internal server error"

const errorMessageKey = "error_message"

// ErrorMiddleware handles error recovery and formatting.
type ErrorMiddleware struct {
	message string
}

// NewErrorMiddleware creates a new ErrorMiddleware. message is the text users
// see for panics and non-domain errors.
func NewErrorMiddleware(message string) *ErrorMiddleware {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &ErrorMiddleware{message: message}
}

// Recovery returns a gin middleware that recovers from panics.
// It also makes the configured message available to HandleError.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(errorMessageKey, m.message)
		defer func() {
			if err := recover(); err != nil {
				logger := GetRequestLogger(c)
				logger.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    domainerrors.ErrCodeInternal,
					Message: m.message,
				})
			}
		}()
		c.Next()
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HandleError handles errors and sends appropriate HTTP responses.
// Only the user-safe parts of a domain error reach the client.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		if domainErr.HTTPStatus >= http.StatusInternalServerError {
			logger := GetRequestLogger(c)
			logger.Error().Err(err).Str("code", domainErr.Code).Msg("request failed")
		}
		c.AbortWithStatusJSON(domainErr.HTTPStatus, ErrorResponse{
			Code:    domainErr.Code,
			Message: domainErr.Message,
			Details: domainErr.Details,
		})
		return
	}

	logger := GetRequestLogger(c)
	logger.Error().Err(err).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:    domainerrors.ErrCodeInternal,
		Message: errorMessage(c),
	})
}

func errorMessage(c *gin.Context) string {
	if msg := c.GetString(errorMessageKey); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// NotFound returns a 404 handler listing the routes the service exposes.
func NotFound(endpoints []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Debug().Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("route not found")
		c.JSON(http.StatusNotFound, dto.NotFoundResponse{
			Error:              "Endpoint not found",
			AvailableEndpoints: endpoints,
		})
	}
}
