package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/juthamas/contacts-server/internal/logger"
	"github.com/juthamas/contacts-server/internal/model"
	"github.com/juthamas/contacts-server/internal/precond"
)

// Preconditions carries the client's conditional request headers.
// An empty value means the header was absent.
type Preconditions struct {
	IfMatch     string
	IfNoneMatch string
}

func (p Preconditions) conflicting() bool {
	return p.IfMatch != "" && p.IfNoneMatch != ""
}

// Contact implements the per-verb resource policy: it resolves the
// addressed contact, consults the precondition evaluator, and performs
// the store mutation only on a proceed outcome. It holds no state of
// its own beyond the injected store.
type Contact struct {
	store  model.ContactStore
	logger *logger.Logger
}

// NewContact creates a new Contact service.
func NewContact(store model.ContactStore, logger *logger.Logger) *Contact {
	return &Contact{
		store:  store,
		logger: logger,
	}
}

// ListContacts returns the contacts whose title contains titleFilter
// (all contacts when empty) plus the collection validator. An empty
// result is reported as model.ErrNotFound. When If-None-Match matches
// the collection validator, model.ErrNotModified is returned together
// with the tag, so the caller can still emit it.
func (s *Contact) ListContacts(ctx context.Context, titleFilter string, pre Preconditions) ([]model.Contact, string, error) {
	contacts, tag, err := s.store.Search(ctx, titleFilter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to search contacts: %w", err)
	}
	if len(contacts) == 0 {
		return nil, "", model.ErrNotFound
	}

	outcome, err := precond.Evaluate(tag, pre.IfMatch, pre.IfNoneMatch)
	if err != nil {
		return nil, "", err
	}
	switch outcome {
	case precond.NotModified:
		return nil, tag, model.ErrNotModified
	case precond.Failed:
		return nil, "", model.ErrPreconditionFailed
	}
	return contacts, tag, nil
}

// GetContact returns the contact with the given id and its validator.
func (s *Contact) GetContact(ctx context.Context, id int64, pre Preconditions) (model.Contact, string, error) {
	contact, err := s.store.Find(ctx, id)
	if err != nil {
		return model.Contact{}, "", fmt.Errorf("failed to find contact: %w", err)
	}
	tag := contact.ETag()

	outcome, err := precond.Evaluate(tag, pre.IfMatch, pre.IfNoneMatch)
	if err != nil {
		return model.Contact{}, "", err
	}
	switch outcome {
	case precond.NotModified:
		return model.Contact{}, tag, model.ErrNotModified
	case precond.Failed:
		return model.Contact{}, "", model.ErrPreconditionFailed
	}
	return contact, tag, nil
}

// CreateContact inserts the contact. A zero id always receives a fresh
// one and cannot conflict; an explicit id already in use is rejected
// with model.ErrConflict. Preconditions are checked for validity before
// the insert; after it they are evaluated against the freshly computed
// tag only to decide whether the tag should accompany the response. The
// insert stands either way.
func (s *Contact) CreateContact(ctx context.Context, contact model.Contact, pre Preconditions) (model.Contact, string, error) {
	if pre.conflicting() {
		return model.Contact{}, "", precond.ErrConflictingPreconditions
	}

	if err := s.store.Insert(ctx, &contact); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Contact{}, "", err
		}
		return model.Contact{}, "", fmt.Errorf("failed to insert contact: %w", err)
	}

	tag := contact.ETag()
	if outcome, err := precond.Evaluate(tag, pre.IfMatch, pre.IfNoneMatch); err == nil && outcome == precond.Failed {
		return contact, "", nil
	}
	return contact, tag, nil
}

// UpdateContact merges the patch into the contact with the given id.
// The patch may carry the target id or zero; anything else is an input
// error. Preconditions are evaluated against the existing contact's
// validator, and any non-proceed outcome fails the write.
func (s *Contact) UpdateContact(ctx context.Context, id int64, patch model.Contact, pre Preconditions) (model.Contact, string, error) {
	if patch.ID != 0 && patch.ID != id {
		return model.Contact{}, "", model.ErrIDMismatch
	}
	if pre.conflicting() {
		return model.Contact{}, "", precond.ErrConflictingPreconditions
	}

	current, err := s.store.Find(ctx, id)
	if err != nil {
		return model.Contact{}, "", fmt.Errorf("failed to find contact: %w", err)
	}

	outcome, err := precond.Evaluate(current.ETag(), pre.IfMatch, pre.IfNoneMatch)
	if err != nil {
		return model.Contact{}, "", err
	}
	if outcome != precond.Proceed {
		return model.Contact{}, "", model.ErrPreconditionFailed
	}

	patch.ID = id
	updated, err := s.store.Update(ctx, patch)
	if err != nil {
		return model.Contact{}, "", fmt.Errorf("failed to update contact: %w", err)
	}
	return updated, updated.ETag(), nil
}

// DeleteContact removes the contact with the given id, subject to the
// same write precondition policy as UpdateContact.
func (s *Contact) DeleteContact(ctx context.Context, id int64, pre Preconditions) error {
	current, err := s.store.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find contact: %w", err)
	}

	outcome, err := precond.Evaluate(current.ETag(), pre.IfMatch, pre.IfNoneMatch)
	if err != nil {
		return err
	}
	if outcome != precond.Proceed {
		return model.ErrPreconditionFailed
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// LoadSnapshot pre-populates the store from the snapshot collaborator
// and returns the number of contacts loaded.
func (s *Contact) LoadSnapshot(ctx context.Context, snapshot model.Snapshot) (int, error) {
	contacts, err := snapshot.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load snapshot: %w", err)
	}
	for i := range contacts {
		if err := s.store.Save(ctx, &contacts[i]); err != nil {
			return i, fmt.Errorf("failed to save contact %d from snapshot: %w", contacts[i].ID, err)
		}
	}
	return len(contacts), nil
}

// FlushSnapshot writes the full record set to the snapshot collaborator.
func (s *Contact) FlushSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	contacts, err := s.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read contacts for snapshot: %w", err)
	}
	if err := snapshot.ReplaceAll(ctx, contacts); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}
