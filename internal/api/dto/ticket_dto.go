package dto

import (
	"encoding/json"
	"time"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	IssueDescription string `json:"issue_description"`
}

// LookupTicketRequest payload.
type LookupTicketRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	ConfirmationNumber int    `json:"confirmation_number"`
}

// UpdateTicketRequest targets a ticket by the caller's identity triple.
type UpdateTicketRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	ConfirmationNumber int    `json:"confirmation_number"`
	Field              string `json:"field"`
	Value              string `json:"value"`
}

// UpdateTicketByIDRequest targets a ticket by its id.
type UpdateTicketByIDRequest struct {
	TicketID FlexibleID `json:"ticket_id"`
	Field    string     `json:"field"`
	Value    string     `json:"value"`
}

// FlexibleID accepts a JSON string or number. Ids are strings internally
// but the voice agent sends the numeric form for file-backed tickets.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// TicketResponse is the wire shape of a ticket record.
type TicketResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Issue              string    `json:"issue"`
	Price              int       `json:"price"`
	ConfirmationNumber int       `json:"confirmation_number"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewTicketResponse maps a domain ticket to its wire shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		Name:               ticket.Name,
		Email:              ticket.Email,
		Phone:              ticket.Phone,
		Address:            ticket.Address,
		Issue:              ticket.Issue,
		Price:              ticket.Price,
		ConfirmationNumber: ticket.ConfirmationNumber,
		CreatedAt:          ticket.CreatedAt,
	}
}
