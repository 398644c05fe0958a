package datastores

import (
	"context"
	"unicode/utf8"
)

type (
	ContactID = UUID
	Contact   struct {
		ID        ContactID `json:"id"`
		FirstName string    `json:"firstName"`
		LastName  string    `json:"lastName"`
		Phone     string    `json:"phone"`
	}
)

// NewContactID returns a time-ordered identifier for a new contact.
func NewContactID() ContactID { return newUUID() }

// ContactsStore reads and overwrites the whole contact collection at once.
type ContactsStore interface {
	// LoadAll returns the stored collection in append order.
	// A missing or unreadable document is an empty collection, not an error.
	LoadAll(context.Context) ([]*Contact, error)
	// SaveAll replaces the stored collection with cs.
	SaveAll(ctx context.Context, cs []*Contact) error
}

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// valid reports whether c holds the invariants every stored contact has.
func (c *Contact) valid() bool {
	if c == nil || c.ID.IsZero() || c.FirstName == "" || c.LastName == "" {
		return false
	}
	n := utf8.RuneCountInString(c.Phone)
	if n < phoneMinDigits || n > phoneMaxDigits {
		return false
	}
	for _, r := range c.Phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
