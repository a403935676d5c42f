package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewTicketRepository(t *testing.T) {
	repo := NewTicketRepository(&pgxpool.Pool{})
	assert.NotNil(t, repo)
}

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(&pgxpool.Pool{})
	assert.NotNil(t, repo)
}
