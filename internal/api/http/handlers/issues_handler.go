package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-bot/ticket-api/internal/service"
)

// IssuesHandler serves the supported issue catalog.
type IssuesHandler struct {
	service *service.TicketService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(ticketService *service.TicketService) *IssuesHandler {
	return &IssuesHandler{service: ticketService}
}

// ListSupportedIssues GET /supported-issues.
func (h *IssuesHandler) ListSupportedIssues(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "issues": h.service.SupportedIssues()})
}
