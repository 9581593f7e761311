package model

import "context"

// ContactStore defines persistence operations for contacts.
//
// Implementations own record identity and lifetime: ids are assigned by
// the store, never by callers, and all returned contacts are value
// copies, so state changes only through Save, Update, and Delete.
type ContactStore interface {
	// Find returns the contact with the given id, or ErrNotFound.
	Find(ctx context.Context, id int64) (Contact, error)
	// FindAll returns all contacts in insertion order.
	FindAll(ctx context.Context) ([]Contact, error)
	// FindByTitle returns contacts whose title contains the given
	// substring, case-insensitively. No match yields an empty slice.
	FindByTitle(ctx context.Context, title string) ([]Contact, error)
	// Search is FindByTitle paired with the collection validator,
	// produced atomically so the tag is never stale with respect to the
	// returned members. An empty title matches everything.
	Search(ctx context.Context, title string) ([]Contact, string, error)
	// Save inserts or replaces the contact. A zero id means the store
	// assigns a fresh one, written back into the passed contact.
	Save(ctx context.Context, contact *Contact) error
	// Insert adds the contact only if its id is not in use, returning
	// ErrConflict otherwise. A zero id is assigned as in Save.
	Insert(ctx context.Context, contact *Contact) error
	// Update merges the patch into the contact with patch's id,
	// following Contact.ApplyUpdate semantics.
	Update(ctx context.Context, patch Contact) (Contact, error)
	// Delete removes the contact with the given id, or returns
	// ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// RemoveAll empties the store.
	RemoveAll(ctx context.Context) error
}

// Snapshot loads and flushes the full contact set outside the process.
// It is a bootstrap collaborator: file location, format versioning, and
// recovery are the implementation's concern, not the store's.
type Snapshot interface {
	LoadAll(ctx context.Context) ([]Contact, error)
	ReplaceAll(ctx context.Context, contacts []Contact) error
	Close() error
}
