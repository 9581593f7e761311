package snapshot

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juthamas/contacts-server/internal/model"
)

func TestSQLiteStore_LoadAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "name", "email", "photo_url"}).
		AddRow(101, "Test contact", "Joe Experimental", "none@testing.com", "").
		AddRow(102, "Another Test contact", "", "", "")
	mock.ExpectQuery("SELECT id, title, name, email, photo_url FROM contacts ORDER BY position").
		WillReturnRows(rows)

	store := newSQLiteStoreWithDB(db)
	contacts, err := store.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, contacts, 2)
	assert.Equal(t, model.Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com"}, contacts[0])
	assert.Equal(t, "", contacts[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ReplaceAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contacts").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO contacts").
		WithArgs(int64(101), "Test contact", "", "", "", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := newSQLiteStoreWithDB(db)
	err = store.ReplaceAll(context.Background(), []model.Contact{{ID: 101, Title: "Test contact"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ReplaceAll_InsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contacts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO contacts").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	store := newSQLiteStoreWithDB(db)
	err = store.ReplaceAll(context.Background(), []model.Contact{{ID: 101, Title: "Test contact"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(t.TempDir() + "/contacts.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	contacts := []model.Contact{
		{ID: 101, Title: "Test contact", Name: "Joe Experimental"},
		{ID: 102, Title: "Another Test contact"},
	}
	require.NoError(t, store.ReplaceAll(ctx, contacts))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, contacts, loaded)
}
