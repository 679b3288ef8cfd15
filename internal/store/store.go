// Package store persists users, posts and sessions in PostgreSQL.
//
// Each entity exposes a small interface next to its Postgres
// implementation so that callers can swap in fakes for tests.
package store

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)
