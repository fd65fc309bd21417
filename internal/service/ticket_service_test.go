package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/helpdesk-bot/ticket-api/internal/events"
	"github.com/helpdesk-bot/ticket-api/internal/repository"
	"github.com/helpdesk-bot/ticket-api/pkg/util"
)

func newTestService() (*TicketService, repository.TicketRepository) {
	repo := repository.NewMemoryRepository()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, repo
}

func createInput(issueDescription string) TicketCreateInput {
	return TicketCreateInput{
		Name:             "Alice Smith",
		Email:            "alice@example.com",
		Phone:            "555-0100",
		Address:          "1 Main St",
		IssueDescription: issueDescription,
	}
}

func TestCreateTicketResolvesIssue(t *testing.T) {
	svc, _ := newTestService()

	ticket, err := svc.CreateTicket(context.Background(), createInput("printer won't turn on"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Issue != "Power plug or driver issues" {
		t.Fatalf("issue = %q, want printer description", ticket.Issue)
	}
	if ticket.Price != 10 {
		t.Fatalf("price = %d, want 10", ticket.Price)
	}
	if ticket.ConfirmationNumber < 10000 || ticket.ConfirmationNumber > 99999 {
		t.Fatalf("confirmation number %d outside [10000, 99999]", ticket.ConfirmationNumber)
	}
}

func TestCreateTicketUnsupportedIssueWritesNothing(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.CreateTicket(context.Background(), createInput("my cat is sick"))
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 validation error", err)
	}

	tickets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("unsupported issue persisted %d tickets", len(tickets))
	}
}

func TestLookupTicketFoldsIdentity(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateTicket(context.Background(), createInput("no internet at home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.LookupTicket(context.Background(), " alice smith", "ALICE@EXAMPLE.COM ", created.ConfirmationNumber)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("lookup returned id %q, want %q", found.ID, created.ID)
	}

	_, err = svc.LookupTicket(context.Background(), "Nobody", "nobody@example.com", 10000)
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("lookup miss: got %v, want 404", err)
	}
}

func TestUpdateByIDReclassifiesIssue(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.CreateTicket(context.Background(), createInput("printer won't turn on"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateByID(context.Background(), created.ID, "issue", "my wifi is down"); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Issue != "Network connectivity issues" {
		t.Fatalf("issue = %q, want Wi-Fi description", updated.Issue)
	}
	if updated.Price != 20 {
		t.Fatalf("price = %d, want 20", updated.Price)
	}
}

func TestUpdateByIDInvalidField(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateTicket(context.Background(), createInput("printer won't turn on"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.UpdateByID(context.Background(), created.ID, "email", "other@example.com")
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 validation error", err)
	}
}

func TestUpdateByIDUnknownTicket(t *testing.T) {
	svc, _ := newTestService()

	err := svc.UpdateByID(context.Background(), "404", "phone", "555-0199")
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("got %v, want 404", err)
	}
}

func TestUpdateByIdentity(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.CreateTicket(context.Background(), createInput("no internet at home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ticketID, err := svc.UpdateByIdentity(context.Background(),
		"ALICE SMITH", "alice@example.com", created.ConfirmationNumber, "address", "2 Oak Ave")
	if err != nil {
		t.Fatalf("update by identity: %v", err)
	}
	if ticketID != created.ID {
		t.Fatalf("update returned id %q, want %q", ticketID, created.ID)
	}
	updated, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Address != "2 Oak Ave" {
		t.Fatalf("address = %q, want updated value", updated.Address)
	}
}
