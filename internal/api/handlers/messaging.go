package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wagateway/gateway/internal/api/dto"
	"github.com/wagateway/gateway/internal/api/middleware"
	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/services/session"
)

// Sender delivers outbound WhatsApp messages.
type Sender interface {
	SendText(ctx context.Context, number, text string) error
}

// MessagingHandler serves the outbound send endpoint.
type MessagingHandler struct {
	sender Sender
	state  session.State
}

// NewMessagingHandler creates a new MessagingHandler. sender is nil when
// the WhatsApp client is disabled.
func NewMessagingHandler(sender Sender, state session.State) *MessagingHandler {
	return &MessagingHandler{sender: sender, state: state}
}

// Send handles POST /api/send.
// @Summary Send a WhatsApp message
// @Description Sends a text message to a phone number. Requires the bot to be ready.
// @Tags Messaging
// @Accept json
// @Produce json
// @Param request body dto.SendRequest true "Recipient and text"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 503 {object} middleware.ErrorResponse "Bot not ready"
// @Router /api/send [post]
func (h *MessagingHandler) Send(c *gin.Context) {
	var req dto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewInvalidInputError("number and message are required", err.Error()))
		return
	}

	if h.sender == nil || !h.state.IsReady() {
		middleware.HandleError(c, domainerrors.NewBotNotReadyError(h.state.Status().String()))
		return
	}

	if err := h.sender.SendText(c.Request.Context(), req.Number, req.Message); err != nil {
		if _, ok := domainerrors.GetDomainError(err); !ok {
			err = domainerrors.NewInternalError("failed to send message", err)
		}
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}
