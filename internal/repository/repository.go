package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

var (
	// ErrNotFound signals that no ticket matched the given identity or id.
	ErrNotFound = errors.New("ticket not found")
	// ErrUpdateFailed signals that a write reached the backend but modified
	// zero records.
	ErrUpdateFailed = errors.New("ticket update did not take effect")
)

// TicketRepository encapsulates ticket persistence. Implementations exist
// for mongo, postgres, redis, a flat JSON file, and process memory; all of
// them honor the same semantics:
//
//   - Create assigns the id and creation timestamp.
//   - List returns a full snapshot ordered by creation time, newest first.
//   - Find matches name and email case-insensitively after trimming
//     whitespace and the confirmation number exactly. Precedence among
//     duplicate identity tuples is undefined.
//   - Update applies a partial update and distinguishes a missing ticket
//     (ErrNotFound) from a write that modified nothing (ErrUpdateFailed).
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context) ([]domain.Ticket, error)
	Find(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, id string, update domain.TicketUpdate) error
	Ping(ctx context.Context) error
}

func foldIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesIdentity(t *domain.Ticket, name, email string, confirmationNumber int) bool {
	return foldIdentity(t.Name) == foldIdentity(name) &&
		foldIdentity(t.Email) == foldIdentity(email) &&
		t.ConfirmationNumber == confirmationNumber
}

func applyUpdate(t *domain.Ticket, update domain.TicketUpdate) {
	if update.Phone != nil {
		t.Phone = *update.Phone
	}
	if update.Address != nil {
		t.Address = *update.Address
	}
	if update.Issue != nil {
		t.Issue = *update.Issue
	}
	if update.Price != nil {
		t.Price = *update.Price
	}
}

// newestFirst returns a copy of tickets ordered by creation time descending.
// The input is walked back to front so that, among equal timestamps, later
// insertions come first.
func newestFirst(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for i := len(tickets) - 1; i >= 0; i-- {
		out = append(out, tickets[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
