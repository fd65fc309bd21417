package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

func TestFileCreatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ticket := newTicket("Alice", "alice@example.com", 12345)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A fresh instance over the same directory sees the record.
	reopened, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	found, err := reopened.Find(context.Background(), "ALICE", "Alice@Example.com", 12345)
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if found.ID != ticket.ID {
		t.Fatalf("found id %q, want %q", found.ID, ticket.ID)
	}
}

func TestFileListNewestFirst(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	first := newTicket("Alice", "alice@example.com", 11111)
	second := newTicket("Bob", "bob@example.com", 22222)
	for _, ticket := range []*domain.Ticket{first, second} {
		if err := repo.Create(context.Background(), ticket); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tickets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("list returned %d tickets, want 2", len(tickets))
	}
	if tickets[0].ID != second.ID {
		t.Fatalf("list[0].ID = %q, want most recent %q", tickets[0].ID, second.ID)
	}
}

func TestFileUpdateIssueAndPrice(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ticket := newTicket("Alice", "alice@example.com", 11111)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	issue := "Power plug or driver issues"
	price := 10
	if err := repo.Update(context.Background(), ticket.ID, domain.TicketUpdate{Issue: &issue, Price: &price}); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Issue != issue || updated.Price != price {
		t.Fatalf("got (%q, %d), want (%q, %d)", updated.Issue, updated.Price, issue, price)
	}

	if err := repo.Update(context.Background(), "42", domain.TicketUpdate{Issue: &issue}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update unknown id: got %v, want ErrNotFound", err)
	}
}

func TestFileCorruptDocumentStartsOver(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ticketsFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	tickets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list over corrupt file: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("got %d tickets from corrupt file, want 0", len(tickets))
	}
}
