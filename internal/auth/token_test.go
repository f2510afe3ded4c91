package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	token, expiresAt, err := tm.GenerateToken(SubjectConnector)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, SubjectConnector, claims.SubjectKind)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	other := NewTokenManager("other-secret", 5)

	token, _, err := tm.GenerateToken(SubjectConnector)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestKeyHashRoundTrip(t *testing.T) {
	hashed, err := HashKey("connector-key", 4)
	require.NoError(t, err)

	assert.NoError(t, CompareKey(hashed, "connector-key"))
	assert.Error(t, CompareKey(hashed, "wrong-key"))
}
