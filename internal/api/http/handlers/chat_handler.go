package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/blockbuddy/lead-console/internal/api/dto"
	"github.com/blockbuddy/lead-console/internal/service"
	"github.com/blockbuddy/lead-console/internal/session"
	"github.com/blockbuddy/lead-console/internal/stream"
	"github.com/blockbuddy/lead-console/internal/validate"
	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

// ChatHandler exposes the visitor-facing live chat session endpoints.
type ChatHandler struct {
	chat *service.ChatService
	hub  *stream.Hub
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService, hub *stream.Hub) *ChatHandler {
	return &ChatHandler{chat: chatService, hub: hub}
}

// StartSession handles POST /api/chat/sessions.
func (h *ChatHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	chatID, fieldErrs, err := h.chat.StartSession(c.UserContext(), validate.ChatStartInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	if !fieldErrs.Empty() {
		return c.Status(http.StatusBadRequest).JSON(dto.StartChatResponse{
			Success: false,
			Error:   service.MsgValidationFailed,
			Errors:  fieldErrs,
		})
	}

	return c.Status(http.StatusCreated).JSON(dto.StartChatResponse{
		Success: true,
		ChatID:  chatID,
	})
}

// Resume handles GET /api/chat/sessions/:chatId.
func (h *ChatHandler) Resume(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	identity, err := h.chat.Resume(c.UserContext(), chatID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return apperrors.NewNotFound("chat session", map[string]any{"chatId": chatID})
		}
		return err
	}
	return c.JSON(dto.SessionResponse{
		ChatID: identity.ChatID,
		Name:   identity.Name,
		Email:  identity.Email,
	})
}

// EndSession handles DELETE /api/chat/sessions/:chatId. The transcript
// survives; only the resumable identity is discarded.
func (h *ChatHandler) EndSession(c *fiber.Ctx) error {
	if err := h.chat.EndSession(c.UserContext(), c.Params("chatId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// SendMessage handles POST /api/chat/sessions/:chatId/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	msg, fieldErrs, err := h.chat.SendMessage(c.UserContext(), c.Params("chatId"), validate.ChatMessageInput{
		Sender: req.Sender,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}
	if !fieldErrs.Empty() {
		return c.Status(http.StatusBadRequest).JSON(dto.SendMessageResponse{
			Success: false,
			Message: service.MsgValidationFailed,
			Errors:  fieldErrs,
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.FromMessage(msg),
	})
}

// ListMessages handles GET /api/chat/sessions/:chatId/messages.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.chat.ListMessages(c.UserContext(), c.Params("chatId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMessages(msgs)})
}

// StreamMessages handles GET /api/chat/sessions/:chatId/stream. The first
// frame is the current transcript; later frames arrive as messages land.
func (h *ChatHandler) StreamMessages(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	msgs, err := h.chat.ListMessages(c.UserContext(), chatID)
	if err != nil {
		return err
	}
	initial, err := json.Marshal(dto.FromMessages(msgs))
	if err != nil {
		return err
	}
	return streamSSE(c, h.hub, stream.TopicChat(chatID), initial)
}
