package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

const ticketsFileName = "tickets.json"

// fileDocument is the persisted layout: one JSON document holding every
// ticket.
type fileDocument struct {
	Tickets []domain.Ticket `json:"tickets"`
}

// fileRepository stores tickets in a single JSON file. Every operation is a
// read-modify-write cycle over the whole document; concurrent writers from
// the same process are serialized by the mutex, nothing more.
type fileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRepository prepares the data directory and probes it for
// writability by ensuring the tickets file exists. A non-writable directory
// surfaces here, letting the caller move on to the next fallback tier.
func NewFileRepository(dir string) (TicketRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, ticketsFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeDocument(path, fileDocument{Tickets: []domain.Ticket{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat tickets file: %w", err)
	}
	return &fileRepository{path: path}, nil
}

func readDocument(path string) (fileDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileDocument{}, nil
		}
		return fileDocument{}, fmt.Errorf("read tickets file: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt file starts the collection over rather than wedging
		// every request.
		return fileDocument{}, nil
	}
	return doc, nil
}

func writeDocument(path string, doc fileDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tickets file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write tickets file: %w", err)
	}
	return nil
}

func (r *fileRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := readDocument(r.path)
	if err != nil {
		return err
	}

	maxID := 0
	for i := range doc.Tickets {
		if n, err := strconv.Atoi(doc.Tickets[i].ID); err == nil && n > maxID {
			maxID = n
		}
	}
	ticket.ID = strconv.Itoa(maxID + 1)
	ticket.CreatedAt = time.Now().UTC()
	doc.Tickets = append(doc.Tickets, *ticket)
	return writeDocument(r.path, doc)
}

func (r *fileRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := readDocument(r.path)
	if err != nil {
		return nil, err
	}
	return newestFirst(doc.Tickets), nil
}

func (r *fileRepository) Find(_ context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := readDocument(r.path)
	if err != nil {
		return nil, err
	}
	for i := range doc.Tickets {
		if matchesIdentity(&doc.Tickets[i], name, email, confirmationNumber) {
			found := doc.Tickets[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := readDocument(r.path)
	if err != nil {
		return nil, err
	}
	for i := range doc.Tickets {
		if doc.Tickets[i].ID == id {
			found := doc.Tickets[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) Update(_ context.Context, id string, update domain.TicketUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := readDocument(r.path)
	if err != nil {
		return err
	}
	for i := range doc.Tickets {
		if doc.Tickets[i].ID == id {
			applyUpdate(&doc.Tickets[i], update)
			return writeDocument(r.path, doc)
		}
	}
	return ErrNotFound
}

func (r *fileRepository) Ping(_ context.Context) error {
	_, err := os.Stat(r.path)
	return err
}
