package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/blockbuddy/lead-console/internal/api/dto"
	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/service"
	"github.com/blockbuddy/lead-console/internal/stream"
	"github.com/blockbuddy/lead-console/internal/validate"
)

// AdminHandler exposes the authenticated admin console endpoints.
type AdminHandler struct {
	auth  *service.AuthService
	admin *service.AdminService
	chat  *service.ChatService
	hub   *stream.Hub
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService, chatService *service.ChatService, hub *stream.Hub) *AdminHandler {
	return &AdminHandler{auth: authService, admin: adminService, chat: chatService, hub: hub}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// ListRequests handles GET /api/admin/requests.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	reqs, err := h.admin.ListRequests(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequests(reqs)})
}

// StreamRequests handles GET /api/admin/requests/stream. The first frame is
// the full current list; every mutation republishes the whole list.
func (h *AdminHandler) StreamRequests(c *fiber.Ctx) error {
	reqs, err := h.admin.ListRequests(c.UserContext())
	if err != nil {
		return err
	}
	initial, err := json.Marshal(dto.FromRequests(reqs))
	if err != nil {
		return err
	}
	return streamSSE(c, h.hub, stream.TopicRequests, initial)
}

// UpdateStatus handles PATCH /api/admin/requests/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	version, err := h.admin.UpdateStatus(c.UserContext(), c.Params("id"), domain.Status(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.MutationResponse{Success: true, Version: version})
}

// UpdateNotes handles PATCH /api/admin/requests/:id/notes.
func (h *AdminHandler) UpdateNotes(c *fiber.Ctx) error {
	var req dto.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	version, err := h.admin.UpdateNotes(c.UserContext(), c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.MutationResponse{Success: true, Version: version})
}

// ListMessages handles GET /api/admin/requests/:id/messages.
func (h *AdminHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.chat.ListMessages(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMessages(msgs)})
}

// SendAgentMessage handles POST /api/admin/requests/:id/messages. Messages
// posted from the console always carry the agent sender.
func (h *AdminHandler) SendAgentMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	msg, fieldErrs, err := h.chat.SendMessage(c.UserContext(), c.Params("id"), validate.ChatMessageInput{
		Sender: string(domain.SenderAgent),
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
