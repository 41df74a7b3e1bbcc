package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/blockbuddy/lead-console/internal/api/dto"
	"github.com/blockbuddy/lead-console/internal/service"
)

// AIHandler exposes the protocol-identification and summarization endpoints.
type AIHandler struct {
	ai *service.AIService
}

// NewAIHandler constructs handler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{ai: aiService}
}

// IdentifyProtocol handles POST /api/ai/identify-protocol.
func (h *AIHandler) IdentifyProtocol(c *fiber.Ctx) error {
	var req dto.IdentifyProtocolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := h.ai.IdentifyProtocol(c.UserContext(), req.Needs)
	if err != nil {
		return err
	}
	return c.JSON(dto.IdentifyProtocolResponse{
		Protocol: rec.Protocol,
		Reason:   rec.Reason,
	})
}

// Summarize handles POST /api/ai/summarize.
func (h *AIHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	summary, err := h.ai.SummarizeRequest(c.UserContext(), req.RequestText)
	if err != nil {
		return err
	}
	return c.JSON(dto.SummarizeResponse{
		Summary:          summary.Summary,
		UserNeed:         summary.UserNeed,
		SuggestedService: summary.SuggestedService,
	})
}
