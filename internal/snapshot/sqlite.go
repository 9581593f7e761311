package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/juthamas/contacts-server/internal/model"
)

var _ model.Snapshot = (*SQLiteStore)(nil)

// SQLiteStore keeps the snapshot in a single-file sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the sqlite database at path and
// ensures the contacts table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite snapshot: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// newSQLiteStoreWithDB wires an existing handle, for tests.
func newSQLiteStoreWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to initialize sqlite snapshot schema: %w", err)
	}
	return nil
}

// LoadAll reads the snapshot in its stored order.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, name, email, photo_url FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Title, &c.Name, &c.Email, &c.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// ReplaceAll overwrites the snapshot with the given contacts in one
// transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, contacts []model.Contact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	for i, c := range contacts {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO contacts (id, title, name, email, photo_url, position) VALUES (?, ?, ?, ?, ?, ?)",
			c.ID, c.Title, c.Name, c.Email, c.PhotoURL, i)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
