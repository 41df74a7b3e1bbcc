package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/blockbuddy/lead-console/internal/api/dto"
	"github.com/blockbuddy/lead-console/internal/service"
	"github.com/blockbuddy/lead-console/internal/validate"
)

// IntakeHandler exposes the public contact and subscription forms.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intakeService}
}

// SubmitContact handles POST /api/contact.
func (h *IntakeHandler) SubmitContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	_, fieldErrs, err := h.intake.SubmitContact(c.UserContext(), validate.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(dto.SubmitResponse{
			Message: service.MsgServerError,
			Errors:  dto.FormError("Server error"),
		})
	}
	if !fieldErrs.Empty() {
		return c.Status(http.StatusBadRequest).JSON(dto.SubmitResponse{
			Message: service.MsgValidationFailed,
			Errors:  fieldErrs,
		})
	}

	return c.JSON(dto.SubmitResponse{Message: service.MsgContactSuccess})
}

// SubmitSubscription handles POST /api/subscription.
func (h *IntakeHandler) SubmitSubscription(c *fiber.Ctx) error {
	var req dto.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	_, fieldErrs, err := h.intake.SubmitSubscription(c.UserContext(), validate.SubscriptionInput{
		Name:             req.Name,
		Email:            req.Email,
		Protocol:         req.Protocol,
		OtherProtocol:    req.OtherProtocol,
		NetworkType:      req.NetworkType,
		OtherNetworkType: req.OtherNetworkType,
		NodeType:         req.NodeType,
		OtherNodeType:    req.OtherNodeType,
		Query:            req.Query,
	})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(dto.SubmitResponse{
			Message: service.MsgServerError,
			Errors:  dto.FormError("Server error"),
		})
	}
	if !fieldErrs.Empty() {
		return c.Status(http.StatusBadRequest).JSON(dto.SubmitResponse{
			Message: service.MsgValidationFailed,
			Errors:  fieldErrs,
		})
	}

	return c.JSON(dto.SubmitResponse{Message: service.MsgSubscriptionSuccess})
}
