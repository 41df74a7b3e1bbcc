package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockbuddy/lead-console/internal/api/http/handlers"
	"github.com/blockbuddy/lead-console/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Intake         *handlers.IntakeHandler
	Chat           *handlers.ChatHandler
	AI             *handlers.AIHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/contact", cfg.Intake.SubmitContact)
	api.Post("/subscription", cfg.Intake.SubmitSubscription)

	api.Post("/ai/identify-protocol", cfg.AI.IdentifyProtocol)
	api.Post("/ai/summarize", cfg.AI.Summarize)

	chat := api.Group("/chat/sessions")
	chat.Post("", cfg.Chat.StartSession)
	chat.Get("/:chatId", cfg.Chat.Resume)
	chat.Delete("/:chatId", cfg.Chat.EndSession)
	chat.Post("/:chatId/messages", cfg.Chat.SendMessage)
	chat.Get("/:chatId/messages", cfg.Chat.ListMessages)
	chat.Get("/:chatId/stream", cfg.Chat.StreamMessages)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)

	protected := admin.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/requests", cfg.Admin.ListRequests)
	protected.Get("/requests/stream", cfg.Admin.StreamRequests)
	protected.Patch("/requests/:id/status", cfg.Admin.UpdateStatus)
	protected.Patch("/requests/:id/notes", cfg.Admin.UpdateNotes)
	protected.Get("/requests/:id/messages", cfg.Admin.ListMessages)
	protected.Post("/requests/:id/messages", cfg.Admin.SendAgentMessage)
}
