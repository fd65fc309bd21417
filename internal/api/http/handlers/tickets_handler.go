package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-bot/ticket-api/internal/api/dto"
	"github.com/helpdesk-bot/ticket-api/internal/domain"
	"github.com/helpdesk-bot/ticket-api/internal/service"
	"github.com/helpdesk-bot/ticket-api/pkg/util"
)

// TicketsHandler serves the ticket endpoints used by the voice agent and
// the admin view.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" || req.IssueDescription == "" {
		return util.NewValidationError("name, email, phone, address and issue_description are required")
	}

	ticket, err := h.service.CreateTicket(c.Context(), service.TicketCreateInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		IssueDescription: req.IssueDescription,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"ticket_id":           ticket.ID,
		"confirmation_number": ticket.ConfirmationNumber,
		"email":               ticket.Email,
		"issue":               ticket.Issue,
		"price":               ticket.Price,
	})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"success": true, "tickets": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "ticket": dto.NewTicketResponse(ticket)})
}

// LookupTicket POST /tickets/lookup.
func (h *TicketsHandler) LookupTicket(c *fiber.Ctx) error {
	var req dto.LookupTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}

	ticket, err := h.service.LookupTicket(c.Context(), req.Name, req.Email, req.ConfirmationNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
		"message": fmt.Sprintf("Found your ticket! Your issue is: %s for $%d", ticket.Issue, ticket.Price),
	})
}

// UpdateTicket POST /tickets/update.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if !domain.IsUpdatableField(req.Field) {
		return util.NewValidationError(fmt.Sprintf("invalid field %q; only phone, address, issue can be changed", req.Field))
	}

	ticketID, err := h.service.UpdateByIdentity(c.Context(), req.Name, req.Email, req.ConfirmationNumber, req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(req.Field, req.Value, ticketID))
}

// UpdateTicketByID POST /tickets/update-by-id.
func (h *TicketsHandler) UpdateTicketByID(c *fiber.Ctx) error {
	var req dto.UpdateTicketByIDRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if !domain.IsUpdatableField(req.Field) {
		return util.NewValidationError(fmt.Sprintf("invalid field %q; only phone, address, issue can be changed", req.Field))
	}

	if err := h.service.UpdateByID(c.Context(), string(req.TicketID), req.Field, req.Value); err != nil {
		return err
	}
	return c.JSON(updateResponse(req.Field, req.Value, string(req.TicketID)))
}

func updateResponse(field, value, ticketID string) fiber.Map {
	return fiber.Map{
		"success":   true,
		"field":     field,
		"value":     value,
		"ticket_id": ticketID,
		"message":   "Updated " + field,
	}
}
