package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

// memoryRepository keeps tickets in process memory. It is the last tier of
// the storage fallback chain; records do not survive a restart.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int
	tickets []domain.Ticket
}

// NewMemoryRepository instantiates the in-memory store.
func NewMemoryRepository() TicketRepository {
	return &memoryRepository{nextID: 1}
}

func (r *memoryRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = strconv.Itoa(r.nextID)
	ticket.CreatedAt = time.Now().UTC()
	r.nextID++
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return newestFirst(r.tickets), nil
}

func (r *memoryRepository) Find(_ context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if matchesIdentity(&r.tickets[i], name, email, confirmationNumber) {
			found := r.tickets[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID == id {
			found := r.tickets[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, id string, update domain.TicketUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID == id {
			applyUpdate(&r.tickets[i], update)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepository) Ping(_ context.Context) error {
	return nil
}
