package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 64))

func newTestJWT(t *testing.T, clk clock.Clocker) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "doorwise",
		Audiences: []string{"doorwise-admin"},
		TTL:       30 * time.Minute,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)
	return j
}

func TestNewHS512_ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestSymmetric_RoundTrip(t *testing.T) {
	j := newTestJWT(t, clock.New())

	token, err := j.Generate("admin@club.org")
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@club.org", claims.AdminEmail)
	assert.Equal(t, "admin@club.org", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestSymmetric_Expired(t *testing.T) {
	clk := clock.NewManual(time.Now())
	j := newTestJWT(t, clk)

	token, err := j.Generate("admin@club.org")
	require.NoError(t, err)

	clk.Advance(31 * time.Minute)
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_Tampered(t *testing.T) {
	j := newTestJWT(t, clock.New())

	token, err := j.Generate("admin@club.org")
	require.NoError(t, err)

	_, err = j.Verify(token + "x")
	assert.Error(t, err)
}

func TestSymmetric_WrongIssuer(t *testing.T) {
	other, err := NewHS512(Config{
		Secret: testSecret,
		Issuer: "someone-else",
		TTL:    time.Minute,
		Clock:  clock.New(),
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	token, err := other.Generate("admin@club.org")
	require.NoError(t, err)

	_, err = newTestJWT(t, clock.New()).Verify(token)
	assert.Error(t, err)
}

func TestAuthContext(t *testing.T) {
	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{AdminEmail: "admin@club.org"})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, "admin@club.org", clm.AdminEmail)
}
