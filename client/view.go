package client

import (
	"context"
	"slices"
	"sync"
	"time"
)

type Lister interface {
	List(ctx context.Context) ([]Contact, error)
}

// View is the client-side copy of the contact list.
type View struct {
	mu       sync.RWMutex
	contacts []Contact
	loadedAt time.Time
}

// Load replaces the whole view with what l lists. On error the view is left unchanged.
func (v *View) Load(ctx context.Context, l Lister) error {
	contacts, err := l.List(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.contacts = slices.Clone(contacts)
	v.loadedAt = time.Now()
	return nil
}

// Contacts returns a copy of the contacts from the last successful load.
func (v *View) Contacts() []Contact {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.contacts)
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.contacts)
}

// LoadedAt is the time of the last successful load, zero before the first one.
func (v *View) LoadedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loadedAt
}
