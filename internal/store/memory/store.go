// Package memory provides the canonical in-memory contact store. It is
// the single owner of contact identity: ids are assigned from a
// monotonic counter that is never rewound, so an id is never reused
// even after its contact is deleted.
package memory

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/juthamas/contacts-server/internal/model"
)

// idSeed is where assigned ids start. Explicitly saved ids below the
// seed (pre-loaded snapshots, fixtures) never collide with assigned ones.
const idSeed = 1000

var _ model.ContactStore = (*Store)(nil)

// Store is a mutex-guarded map of contacts. All contacts passed out are
// value copies; mutating one has no effect until it is saved back.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]model.Contact
	order  []int64
	nextID int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byID:   make(map[int64]model.Contact),
		nextID: idSeed,
	}
}

// Find returns the contact with the given id.
func (s *Store) Find(_ context.Context, id int64) (model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return model.Contact{}, model.ErrNotFound
	}
	return c, nil
}

// FindAll returns all contacts in insertion order.
func (s *Store) FindAll(_ context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(""), nil
}

// FindByTitle returns contacts whose title contains the given substring,
// case-insensitively. An empty slice is returned when nothing matches.
func (s *Store) FindByTitle(_ context.Context, title string) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(title), nil
}

// Search returns the contacts matching the title filter together with
// the collection validator. Both are produced under one lock, so the
// tag always corresponds to the state the members were read from.
func (s *Store) Search(_ context.Context, title string) ([]model.Contact, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(title), model.CollectionETag(s.snapshotLocked("")), nil
}

func (s *Store) snapshotLocked(title string) []model.Contact {
	title = strings.ToLower(title)
	contacts := make([]model.Contact, 0, len(s.order))
	for _, id := range s.order {
		c := s.byID[id]
		if title == "" || strings.Contains(strings.ToLower(c.Title), title) {
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// Save inserts or replaces the contact. A zero id is replaced with a
// freshly assigned one, written back into the passed contact.
func (s *Store) Save(_ context.Context, contact *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(contact)
}

// Insert adds the contact only if its id is not yet in use. The check
// and the insert run under one lock, so concurrent creates with the
// same explicit id cannot both succeed.
func (s *Store) Insert(_ context.Context, contact *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[contact.ID]; ok {
		return model.ErrConflict
	}
	return s.saveLocked(contact)
}

func (s *Store) saveLocked(contact *model.Contact) error {
	if contact.ID == 0 {
		id, err := s.assignLocked()
		if err != nil {
			return err
		}
		contact.ID = id
	} else if contact.ID >= s.nextID {
		// keep future assignments above any explicitly saved id
		s.nextID = contact.ID + 1
	}
	if _, ok := s.byID[contact.ID]; !ok {
		s.order = append(s.order, contact.ID)
	}
	s.byID[contact.ID] = *contact
	return nil
}

func (s *Store) assignLocked() (int64, error) {
	for s.nextID < math.MaxInt64 {
		id := s.nextID
		s.nextID++
		if _, ok := s.byID[id]; !ok {
			return id, nil
		}
	}
	return 0, model.ErrIDExhausted
}

// Update merges the patch into the contact with the patch's id. The
// merge and the write are one critical section, so readers never see a
// partially applied contact.
func (s *Store) Update(_ context.Context, patch model.Contact) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[patch.ID]
	if !ok {
		return model.Contact{}, model.ErrNotFound
	}
	if err := current.ApplyUpdate(patch); err != nil {
		return model.Contact{}, err
	}
	s.byID[current.ID] = current
	return current, nil
}

// Delete removes the contact with the given id.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.byID, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveAll empties the store. The id counter is not rewound, so ids
// stay unique across the reset.
func (s *Store) RemoveAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]model.Contact)
	s.order = nil
	return nil
}
