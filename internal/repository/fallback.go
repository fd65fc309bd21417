package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

// fallbackRepository walks a list of candidate data directories and settles
// on the first writable one, degrading to process memory when none works.
// The chain is evaluated lazily on first use and the decision is cached for
// the remainder of the process lifetime; it is never re-probed per call.
type fallbackRepository struct {
	once   sync.Once
	dirs   []string
	logger *zap.Logger
	repo   TicketRepository
}

// NewFallbackRepository builds the file-or-memory fallback chain over the
// given candidate directories, tried in order.
func NewFallbackRepository(logger *zap.Logger, dirs ...string) TicketRepository {
	return &fallbackRepository{dirs: dirs, logger: logger}
}

func (r *fallbackRepository) resolve() TicketRepository {
	r.once.Do(func() {
		for _, dir := range r.dirs {
			repo, err := NewFileRepository(dir)
			if err != nil {
				r.logger.Warn("data dir not writable, trying next tier",
					zap.String("dir", dir), zap.Error(err))
				continue
			}
			r.logger.Info("using file ticket store", zap.String("dir", dir))
			r.repo = repo
			return
		}
		r.logger.Warn("no writable data dir; tickets will not survive restarts")
		r.repo = NewMemoryRepository()
	})
	return r.repo
}

func (r *fallbackRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.resolve().Create(ctx, ticket)
}

func (r *fallbackRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.resolve().List(ctx)
}

func (r *fallbackRepository) Find(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	return r.resolve().Find(ctx, name, email, confirmationNumber)
}

func (r *fallbackRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.resolve().GetByID(ctx, id)
}

func (r *fallbackRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	return r.resolve().Update(ctx, id, update)
}

func (r *fallbackRepository) Ping(ctx context.Context) error {
	return r.resolve().Ping(ctx)
}
