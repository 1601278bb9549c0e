package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("abc", time.Minute)
	require.NoError(t, err)

	id, err := VerifySessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "abc", id)
}

func TestExpiredTokenReportsSessionExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("abc", -time.Minute)
	require.NoError(t, err)

	_, err = VerifySessionToken(token)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, err := GenerateSessionToken("abc", time.Minute)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, err = VerifySessionToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifySessionToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
