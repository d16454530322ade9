package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadoscout/pkg/apierr"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-123", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	issuedAt := time.Now()
	m.now = func() time.Time { return issuedAt }
	token, err := m.Issue("user-123", "a@b.com")
	require.NoError(t, err)

	// move past the expiry horizon
	m.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = m.Verify(token)
	require.Error(t, err)
	assert.Equal(t, apierr.KindTokenExpired, apierr.KindOf(err))
}

func TestTokenTampered(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-123", "a@b.com")
	require.NoError(t, err)

	_, err = m.Verify(token + "x")
	require.Error(t, err)
	assert.Equal(t, apierr.KindTokenInvalid, apierr.KindOf(err))
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue("user-123", "a@b.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.Equal(t, apierr.KindTokenInvalid, apierr.KindOf(err))
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apierr.KindTokenInvalid, apierr.KindOf(err))
}
