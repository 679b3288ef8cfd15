package auth

import "errors"

var (
	// ErrInvalidLogin covers both unknown email and wrong password so a
	// caller cannot probe which accounts exist.
	ErrInvalidLogin = errors.New("invalid email or password")

	// ErrNoSession means the presented token resolves to no live session.
	ErrNoSession = errors.New("session not found")
)
