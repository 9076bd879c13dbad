package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "KolAnalytics", 1)

	token, err := tm.GenerateToken(42, "pitcher")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "pitcher", claims.Role)
	assert.InDelta(t, time.Hour.Seconds(), RemainingTTL(claims).Seconds(), 5)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("other", "KolAnalytics", 1).GenerateToken(1, "business")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "KolAnalytics", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsForeignIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "someone-else", 1).GenerateToken(1, "business")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "KolAnalytics", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	sig, err := ExtractSignature("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "c", sig)

	_, err = ExtractSignature("not-a-token")
	assert.Error(t, err)
}
