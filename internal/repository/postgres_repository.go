package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

// postgresRepository backs the store with Postgres. Ids are BIGSERIAL values
// rendered as strings at the domain boundary.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository instantiates the Postgres-backed store.
func NewPostgresRepository(pool *pgxpool.Pool) TicketRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (name, email, phone, address, issue, price, confirmation_number)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	var id int64
	if err := r.pool.QueryRow(ctx, query,
		ticket.Name,
		ticket.Email,
		ticket.Phone,
		ticket.Address,
		ticket.Issue,
		ticket.Price,
		ticket.ConfirmationNumber,
	).Scan(&id, &ticket.CreatedAt); err != nil {
		return err
	}
	ticket.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, name, email, phone, address, issue, price, confirmation_number, created_at
        FROM tickets ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *postgresRepository) Find(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	const query = `
        SELECT id, name, email, phone, address, issue, price, confirmation_number, created_at
        FROM tickets
        WHERE LOWER(BTRIM(name)) = LOWER(BTRIM($1))
          AND LOWER(BTRIM(email)) = LOWER(BTRIM($2))
          AND confirmation_number = $3
        LIMIT 1`
	return r.fetchSingle(ctx, query, name, email, confirmationNumber)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	const query = `
        SELECT id, name, email, phone, address, issue, price, confirmation_number, created_at
        FROM tickets WHERE id = $1`
	return r.fetchSingle(ctx, query, numericID)
}

func (r *postgresRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var (
		ticket domain.Ticket
		id     int64
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&id,
		&ticket.Name,
		&ticket.Email,
		&ticket.Phone,
		&ticket.Address,
		&ticket.Issue,
		&ticket.Price,
		&ticket.ConfirmationNumber,
		&ticket.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ticket.ID = strconv.FormatInt(id, 10)
	return &ticket, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	sets := []string{}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if update.Phone != nil {
		addSet("phone", *update.Phone)
	}
	if update.Address != nil {
		addSet("address", *update.Address)
	}
	if update.Issue != nil {
		addSet("issue", *update.Issue)
	}
	if update.Price != nil {
		addSet("price", *update.Price)
	}
	if len(sets) == 0 {
		return ErrUpdateFailed
	}

	args = append(args, numericID)
	query := fmt.Sprintf("UPDATE tickets SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var (
			ticket domain.Ticket
			id     int64
		)
		if err := rows.Scan(
			&id,
			&ticket.Name,
			&ticket.Email,
			&ticket.Phone,
			&ticket.Address,
			&ticket.Issue,
			&ticket.Price,
			&ticket.ConfirmationNumber,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		ticket.ID = strconv.FormatInt(id, 10)
		result = append(result, ticket)
	}
	return result, rows.Err()
}
