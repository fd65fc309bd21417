package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
	"github.com/helpdesk-bot/ticket-api/internal/events"
	"github.com/helpdesk-bot/ticket-api/internal/repository"
	"github.com/helpdesk-bot/ticket-api/pkg/util"
)

const unsupportedIssueMessage = "Unsupported issue. We handle Wi-Fi problems ($20), Email login issues ($15), Slow laptop performance ($25), and Printer problems ($10)."

// TicketService coordinates ticket workflows: classification, confirmation
// number generation and store access.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// TicketCreateInput describes a ticket creation request.
type TicketCreateInput struct {
	Name             string
	Email            string
	Phone            string
	Address          string
	IssueDescription string
}

// CreateTicket classifies the issue text and persists a new ticket. An
// unsupported issue fails before any write happens.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	issue, ok := domain.IdentifyIssue(input.IssueDescription)
	if !ok {
		return nil, util.NewValidationError(unsupportedIssueMessage)
	}

	ticket := &domain.Ticket{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Address:            input.Address,
		Issue:              issue.Description,
		Price:              issue.Price,
		ConfirmationNumber: generateConfirmationNumber(),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, util.NewStorageError("failed to create ticket", err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Issue:              ticket.Issue,
			Price:              ticket.Price,
			ConfirmationNumber: ticket.ConfirmationNumber,
		},
	})
	return ticket, nil
}

// ListTickets returns all tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, util.NewStorageError("failed to list tickets", err)
	}
	return tickets, nil
}

// LookupTicket finds a ticket by the caller's identity triple.
func (s *TicketService) LookupTicket(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	ticket, err := s.tickets.Find(ctx, name, email, confirmationNumber)
	if err != nil {
		return nil, mapStoreError(err, "failed to look up ticket")
	}
	return ticket, nil
}

// GetTicket returns a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to get ticket")
	}
	return ticket, nil
}

// UpdateByIdentity resolves the ticket through the identity triple and
// applies a single-field update. The updated ticket id is returned for the
// response shape.
func (s *TicketService) UpdateByIdentity(ctx context.Context, name, email string, confirmationNumber int, field, value string) (string, error) {
	ticket, err := s.tickets.Find(ctx, name, email, confirmationNumber)
	if err != nil {
		return "", mapStoreError(err, "failed to look up ticket")
	}
	if err := s.updateTicket(ctx, ticket.ID, field, value); err != nil {
		return "", err
	}
	return ticket.ID, nil
}

// UpdateByID applies a single-field update to the ticket with the given id.
func (s *TicketService) UpdateByID(ctx context.Context, id, field, value string) error {
	return s.updateTicket(ctx, id, field, value)
}

// SupportedIssues returns the issue catalog.
func (s *TicketService) SupportedIssues() []domain.SupportedIssue {
	return domain.SupportedIssues
}

func (s *TicketService) updateTicket(ctx context.Context, id, field, value string) error {
	update, err := resolveUpdate(field, value)
	if err != nil {
		return err
	}
	if err := s.tickets.Update(ctx, id, update); err != nil {
		return mapStoreError(err, "failed to update ticket")
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: id,
		Payload:  events.TicketUpdatedPayload{Field: field, Value: value},
	})
	return nil
}

// resolveUpdate validates the field name and, for issue updates, re-runs
// the classifier so the stored issue and price always come from the
// catalog.
func resolveUpdate(field, value string) (domain.TicketUpdate, error) {
	var update domain.TicketUpdate
	switch field {
	case domain.FieldPhone:
		update.Phone = &value
	case domain.FieldAddress:
		update.Address = &value
	case domain.FieldIssue:
		issue, ok := domain.IdentifyIssue(value)
		if !ok {
			return update, util.NewValidationError(unsupportedIssueMessage)
		}
		update.Issue = &issue.Description
		update.Price = &issue.Price
	default:
		return update, util.NewValidationError(fmt.Sprintf(
			"invalid field %q; only %s can be changed", field,
			strings.Join([]string{domain.FieldPhone, domain.FieldAddress, domain.FieldIssue}, ", ")))
	}
	return update, nil
}

// generateConfirmationNumber draws uniformly from [10000, 99999]. Numbers
// are not checked for collisions; the lookup key includes name and email,
// which keeps duplicates across requesters harmless.
func generateConfirmationNumber() int {
	return rand.IntN(90000) + 10000
}

func mapStoreError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return util.NewNotFound("ticket not found")
	case errors.Is(err, repository.ErrUpdateFailed):
		return util.NewStorageError("ticket update did not take effect", err)
	default:
		return util.NewStorageError(message, err)
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
