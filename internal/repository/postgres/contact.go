package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/juthamas/contacts-server/internal/model"
)

var _ model.Snapshot = (*ContactRepository)(nil)

// ContactRepository persists store snapshots in postgres.
type ContactRepository struct {
	db *Connection
}

func NewContactRepository(db *Connection) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

// LoadAll reads the snapshot in its stored order.
func (r *ContactRepository) LoadAll(ctx context.Context) ([]model.Contact, error) {
	query := `
		SELECT id, title, name, email, photo_url
		FROM contacts
		ORDER BY position`

	rows, err := r.db.Query(ctx, query)
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
func (r *ContactRepository) ReplaceAll(ctx context.Context, contacts []model.Contact) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE contacts"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	for i, c := range contacts {
		_, err := tx.Exec(ctx,
			`INSERT INTO contacts (id, title, name, email, photo_url, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.Title, c.Name, c.Email, c.PhotoURL, i)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Close releases the underlying connection pool.
func (r *ContactRepository) Close() error {
	return r.db.Close()
}
