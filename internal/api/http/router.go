package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	GeneralTickets  *handlers.GeneralTicketsHandler
	InternalTickets *handlers.InternalTicketsHandler
	Dashboard       *handlers.DashboardHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	session := authGroup.Group("", cfg.AuthMiddleware.Handle)
	session.Post("/logout", cfg.Auth.Logout)
	session.Post("/password/change", cfg.Auth.ChangePassword)

	general := app.Group("/tickets/general", cfg.AuthMiddleware.Handle)
	general.Post("", cfg.GeneralTickets.Create)
	general.Get("", cfg.GeneralTickets.List)
	general.Get("/:id", cfg.GeneralTickets.Get)
	general.Post("/:id/interactions", cfg.GeneralTickets.AppendInteraction)
	general.Post("/:id/reopen", cfg.GeneralTickets.Reopen)
	general.Put("/:id/history", cfg.GeneralTickets.CorrectHistory)
	general.Get("/:id/receipt", cfg.GeneralTickets.Receipt)

	internal := app.Group("/tickets/internal", cfg.AuthMiddleware.Handle)
	internal.Post("", cfg.InternalTickets.Create)
	internal.Get("", cfg.InternalTickets.List)
	internal.Get("/:id", cfg.InternalTickets.Get)
	internal.Post("/:id/interactions", cfg.InternalTickets.AppendInteraction)
	internal.Post("/:id/reopen", cfg.InternalTickets.Reopen)
	internal.Put("/:id/history", cfg.InternalTickets.CorrectHistory)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboard.Get("/summary", cfg.Dashboard.Summary)
}
