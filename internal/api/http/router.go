package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Get("/:id/comments", cfg.Comments.ListComments)
	tickets.Post("/:id/comments", cfg.Comments.AddComment)
	tickets.Post("/:id/attachments", cfg.Tickets.AddAttachments)
	tickets.Delete("/:id/attachments/:stored", cfg.Tickets.RemoveAttachment)

	app.Get("/users", cfg.AuthMiddleware.Handle, auth.RequireCapability(domain.CapabilityListUsers), cfg.Users.ListUsers)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	dashboard.Get("/stats", cfg.Dashboard.Stats)
	dashboard.Get("/kpi", cfg.Dashboard.KPI)
}
