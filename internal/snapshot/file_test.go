package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juthamas/contacts-server/internal/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contacts.xml")
	store := NewFileStore(path)

	contacts := []model.Contact{
		{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com"},
		{ID: 102, Title: "Another Test contact", Name: "", Email: ""},
	}
	require.NoError(t, store.ReplaceAll(ctx, contacts))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, contacts, loaded)
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.xml"))

	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.xml")
	require.NoError(t, os.WriteFile(path, []byte("<contacts><contact"), 0o644))

	_, err := NewFileStore(path).LoadAll(context.Background())
	assert.Error(t, err)
}

func TestFileStore_ReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contacts.xml")
	store := NewFileStore(path)

	require.NoError(t, store.ReplaceAll(ctx, []model.Contact{{ID: 101, Title: "Test contact"}}))
	require.NoError(t, store.ReplaceAll(ctx, []model.Contact{{ID: 102, Title: "Another Test contact"}}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(102), loaded[0].ID)
}
