// Package snapshot provides collaborators that pre-populate the
// contact store on startup and flush it on shutdown. None of them is a
// durability guarantee: a snapshot is whatever the last successful
// flush wrote.
package snapshot

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/juthamas/contacts-server/internal/model"
)

var _ model.Snapshot = (*FileStore)(nil)

// FileStore keeps the snapshot as an XML document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll reads the snapshot. A missing file is an empty snapshot, not
// an error: the first boot has nothing to load.
func (f *FileStore) LoadAll(_ context.Context) ([]model.Contact, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var list model.ContactList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return list.Contacts, nil
}

// ReplaceAll overwrites the snapshot with the given contacts.
func (f *FileStore) ReplaceAll(_ context.Context, contacts []model.Contact) error {
	data, err := xml.MarshalIndent(model.ContactList{Contacts: contacts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, append([]byte(xml.Header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (f *FileStore) Close() error {
	return nil
}
