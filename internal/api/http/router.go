package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-bot/ticket-api/internal/api/http/handlers"
	"github.com/helpdesk-bot/ticket-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Issues  *handlers.IssuesHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	app.Get("/supported-issues", cfg.Issues.ListSupportedIssues)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/lookup", cfg.Tickets.LookupTicket)
	tickets.Post("/update", cfg.Tickets.UpdateTicket)
	tickets.Post("/update-by-id", cfg.Tickets.UpdateTicketByID)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
}
