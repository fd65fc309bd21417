package events

// EventType identifies a ticket lifecycle event.
type EventType string

const (
	EventTicketCreated EventType = "ticket.created"
	EventTicketUpdated EventType = "ticket.updated"
)

// Event is the envelope published through the dispatcher.
type Event struct {
	Type     EventType
	TicketID string
	Payload  any
}

// TicketCreatedPayload accompanies EventTicketCreated.
type TicketCreatedPayload struct {
	Issue              string
	Price              int
	ConfirmationNumber int
}

// TicketUpdatedPayload accompanies EventTicketUpdated.
type TicketUpdatedPayload struct {
	Field string
	Value string
}
