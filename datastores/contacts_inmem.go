package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu       sync.Mutex
	contacts []Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := new(ContactsInmem)
	_ = s.SaveAll(context.Background(), cs)
	return s
}

func (s *ContactsInmem) LoadAll(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for i := range s.contacts {
		c := s.contacts[i]
		contacts = append(contacts, &c)
	}
	return contacts, nil
}

func (s *ContactsInmem) SaveAll(_ context.Context, cs []*Contact) error {
	contacts := make([]Contact, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			contacts = append(contacts, *c)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = slices.Clip(contacts)
	return nil
}
