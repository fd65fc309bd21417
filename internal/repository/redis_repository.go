package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

const (
	redisSeqKey    = "tickets:seq"
	redisIndexKey  = "tickets:index"
	redisTicketKey = "tickets:item:"
)

// redisRepository stores each ticket as a JSON value keyed by id, with a
// zset index scored by creation time for newest-first listing. Updates are
// plain read-modify-write cycles; there is no cross-request atomicity, same
// as the file tier.
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository instantiates the redis-backed store.
func NewRedisRepository(client *redis.Client) TicketRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	seq, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return err
	}
	ticket.ID = strconv.FormatInt(seq, 10)
	ticket.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(ticket)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisTicketKey+ticket.ID, payload, 0)
	pipe.ZAdd(ctx, redisIndexKey, redis.Z{
		Score:  float64(ticket.CreatedAt.UnixNano()),
		Member: ticket.ID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	ids, err := r.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		ticket, err := r.getTicket(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, nil
}

func (r *redisRepository) Find(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	tickets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if matchesIdentity(&tickets[i], name, email, confirmationNumber) {
			found := tickets[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.getTicket(ctx, id)
}

func (r *redisRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	ticket, err := r.getTicket(ctx, id)
	if err != nil {
		return err
	}
	applyUpdate(ticket, update)
	payload, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisTicketKey+id, payload, 0).Err()
}

func (r *redisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisRepository) getTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	raw, err := r.client.Get(ctx, redisTicketKey+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
