package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	token, hash, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, token, 64) // 32 bytes hex-encoded
	assert.Len(t, hash, 64)  // sha256 hex-encoded
	assert.NotEqual(t, token, hash)
	assert.Equal(t, HashToken(token), hash)

	token2, _, err := NewSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
