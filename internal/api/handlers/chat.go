package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wagateway/gateway/internal/api/dto"
	"github.com/wagateway/gateway/internal/api/middleware"
	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/services/pipeline"
)

// AnonymousSession is used when a chat request carries no sessionId.
const AnonymousSession = "anonymous"

// maxWebhookBody bounds the payload read by the webhook endpoint.
const maxWebhookBody = 1 << 20

// ChatHandler serves the web chat and webhook endpoints.
type ChatHandler struct {
	pipeline pipeline.Pipeline
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(p pipeline.Pipeline) *ChatHandler {
	return &ChatHandler{pipeline: p}
}

// Chat handles POST /api/chat.
// @Summary Chat with the assistant
// @Description Sends a message through the AI pipeline and returns the reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 503 {object} middleware.ErrorResponse "AI service unavailable"
// @Failure 504 {object} middleware.ErrorResponse "AI service timed out"
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewInvalidInputError("message is required", err.Error()))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = AnonymousSession
	}

	reply, err := h.pipeline.Handle(c.Request.Context(), models.OriginWeb, "", req.Message)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		Success:   true,
		Reply:     reply.Text,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Cached:    reply.Cached,
	})
}

// Webhook handles POST /api/webhook.
// @Summary Webhook receiver
// @Description Accepts any JSON payload for future integrations. The payload is not processed.
// @Tags Integrations
// @Accept json
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse "Body is not JSON"
// @Router /api/webhook [post]
func (h *ChatHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil || !json.Valid(body) {
		middleware.HandleError(c, domainerrors.NewInvalidInputError("webhook body must be valid JSON", ""))
		return
	}

	logger := middleware.GetRequestLogger(c)
	logger.Info().Int("bytes", len(body)).Msg("webhook received")

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Webhook received",
	})
}
