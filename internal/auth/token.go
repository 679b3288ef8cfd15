package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a session token: 32 bytes, 64 hex chars.
const tokenBytes = 32

// NewSessionToken returns a fresh random token and the SHA-256 hash that
// gets persisted. The plaintext goes to the client only; a stolen
// sessions table holds nothing replayable.
func NewSessionToken() (token, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating session token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

// HashToken computes the hex-encoded SHA-256 of a session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
