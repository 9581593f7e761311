package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContactRepository(t *testing.T) {
	db := &Connection{}
	repo := NewContactRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestConnection_PingNilPool(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}
