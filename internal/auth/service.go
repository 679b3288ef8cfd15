// Package auth implements the account-and-session core: password hashing,
// session tokens, the login/logout service and the request-context
// identity handed to handlers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog/internal/models"
	"blog/internal/store"
)

// dummyHash is a syntactically valid bcrypt digest verified when the
// email is unknown, so that path costs the same as a wrong password.
// It is not a credential and matches no password we ever issue.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service establishes and tears down authenticated identities.
type Service struct {
	users            store.UserStore
	sessions         store.SessionStore
	sessionLifetime  time.Duration
	rememberLifetime time.Duration
}

func NewService(users store.UserStore, sessions store.SessionStore, sessionLifetime, rememberLifetime time.Duration) *Service {
	return &Service{
		users:            users,
		sessions:         sessions,
		sessionLifetime:  sessionLifetime,
		rememberLifetime: rememberLifetime,
	}
}

// Login verifies the credentials and, on success, persists a session and
// returns its plaintext token. remember picks the extended lifetime.
// Unknown email and wrong password both come back as ErrInvalidLogin.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (string, *models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}

	// Verify against the dummy digest when the user is missing so both
	// failure paths take the same bcrypt work.
	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	if !CheckPassword(hash, password) || user == nil {
		return "", nil, ErrInvalidLogin
	}

	token, tokenHash, err := NewSessionToken()
	if err != nil {
		return "", nil, err
	}

	lifetime := s.sessionLifetime
	if remember {
		lifetime = s.rememberLifetime
	}
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		Remember:  remember,
		ExpiresAt: time.Now().Add(lifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	return token, session, nil
}

// Logout destroys the session behind the token. Unknown or already
// logged-out tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, HashToken(token))
}

// UserFromToken resolves a cookie token to its user. Expired or unknown
// sessions yield ErrNoSession.
func (s *Service) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	session, err := s.sessions.ByTokenHash(ctx, HashToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrNoSession
	}

	user, err := s.users.ByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("look up session user: %w", err)
	}
	return user, nil
}
