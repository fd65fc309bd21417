package domain

import "time"

// Ticket is the support request record created for a help desk caller.
type Ticket struct {
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

// Fields a requester may change after a ticket exists. Updating the issue
// field re-resolves the text through the catalog, which also rewrites the
// price.
const (
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldIssue   = "issue"
)

// IsUpdatableField reports whether the named field accepts updates.
func IsUpdatableField(field string) bool {
	switch field {
	case FieldPhone, FieldAddress, FieldIssue:
		return true
	}
	return false
}

// TicketUpdate carries a partial update. Nil members are left untouched.
// Issue and Price always travel together: the price is derived from the
// catalog entry the new issue text resolves to.
type TicketUpdate struct {
	Phone   *string
	Address *string
	Issue   *string
	Price   *int
}

// IsEmpty reports whether the update would change nothing.
func (u TicketUpdate) IsEmpty() bool {
	return u.Phone == nil && u.Address == nil && u.Issue == nil && u.Price == nil
}
