package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

func newTicket(name, email string, confirmation int) *domain.Ticket {
	return &domain.Ticket{
		Name:               name,
		Email:              email,
		Phone:              "555-0100",
		Address:            "1 Main St",
		Issue:              "Network connectivity issues",
		Price:              20,
		ConfirmationNumber: confirmation,
	}
}

func TestMemoryCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepository()
	ticket := newTicket("Alice", "alice@example.com", 12345)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.ID == "" {
		t.Fatal("create did not assign an id")
	}
	if ticket.CreatedAt.IsZero() {
		t.Fatal("create did not assign a timestamp")
	}
}

func TestMemoryFindFoldsIdentity(t *testing.T) {
	repo := NewMemoryRepository()
	ticket := newTicket("Alice Smith", "alice@example.com", 54321)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.Find(context.Background(), "  ALICE SMITH ", " Alice@Example.COM", 54321)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != ticket.ID {
		t.Fatalf("find returned id %q, want %q", found.ID, ticket.ID)
	}

	if _, err := repo.Find(context.Background(), "Alice Smith", "alice@example.com", 11111); !errors.Is(err, ErrNotFound) {
		t.Fatalf("find with wrong confirmation: got %v, want ErrNotFound", err)
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	first := newTicket("Alice", "alice@example.com", 11111)
	second := newTicket("Bob", "bob@example.com", 22222)
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(context.Background(), second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	tickets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("list returned %d tickets, want 2", len(tickets))
	}
	if tickets[0].ID != second.ID || tickets[1].ID != first.ID {
		t.Fatalf("list order [%s %s], want newest first [%s %s]",
			tickets[0].ID, tickets[1].ID, second.ID, first.ID)
	}
}

func TestMemoryUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	ticket := newTicket("Alice", "alice@example.com", 11111)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "555-0199"
	if err := repo.Update(context.Background(), ticket.ID, domain.TicketUpdate{Phone: &phone}); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("phone = %q, want %q", updated.Phone, phone)
	}
	if updated.Issue != ticket.Issue || updated.Price != ticket.Price {
		t.Fatal("update touched fields outside the partial update")
	}

	if err := repo.Update(context.Background(), "9999", domain.TicketUpdate{Phone: &phone}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update unknown id: got %v, want ErrNotFound", err)
	}
}
