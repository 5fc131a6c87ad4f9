package handlers

import (
	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/models"
	"linkhub/internal/store"
)

// ChatHandler handles the community chat.
type ChatHandler struct {
	hub *store.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(hub *store.Store) *ChatHandler {
	return &ChatHandler{hub: hub}
}

// List returns the chat history in posting order.
func (h *ChatHandler) List(c fiber.Ctx) error {
	messages := h.hub.ChatMessages()
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return jsonSuccess(c, messages)
}

// Send posts a message attributed to the acting user.
func (h *ChatHandler) Send(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	message, err := h.hub.SendMessage(c.Context(), actor(c), body.Text)
	metrics.Record("send_message", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, message)
}
