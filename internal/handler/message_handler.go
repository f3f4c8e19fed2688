package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"breakthrough/internal/service"
)

// MessageHandler handles journal endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages godoc
// @Summary List a user's messages ordered by their order field
// @Tags messages
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	accountID := c.QueryParam("userId")
	if accountID == "" {
		accountID = c.QueryParam("id")
	}

	messages, err := h.messageService.ListMessages(c.Request().Context(), accountID)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, messages)
}
