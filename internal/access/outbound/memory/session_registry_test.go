package memory

import (
	"testing"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()

	assert.False(t, r.IsAuthenticated("admin@club.org"))

	r.Login("admin@club.org")
	r.Login("admin@club.org")
	assert.True(t, r.IsAuthenticated("admin@club.org"))
	assert.True(t, r.IsAuthenticated(" Admin@Club.org "))

	require.NoError(t, r.Logout("admin@club.org"))
	assert.False(t, r.IsAuthenticated("admin@club.org"))

	err := r.Logout("admin@club.org")
	assert.ErrorIs(t, err, entity.ErrNotLoggedIn)
}
