package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/internal/models"
)

// SessionStore persists login sessions keyed by token hash.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error

	// ByTokenHash returns ErrNotFound for unknown hashes. Expiry is the
	// caller's concern; expired rows are still returned until swept.
	ByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	// Delete removes the session with the given token hash. Deleting a
	// session that does not exist is not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteExpired sweeps expired rows and reports how many went away.
	DeleteExpired(ctx context.Context) (int64, error)
}

type PostgresSessionStore struct {
	db *sql.DB
}

func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

func (s *PostgresSessionStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, remember, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.UserID, session.TokenHash, session.Remember, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresSessionStore) ByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	query := `SELECT id, user_id, token_hash, remember, expires_at, created_at
	          FROM sessions WHERE token_hash = $1`

	sess := &models.Session{}
	err := s.db.QueryRowContext(ctx, query, tokenHash).
		Scan(&sess.ID, &sess.UserID, &sess.TokenHash, &sess.Remember, &sess.ExpiresAt, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return sess, nil
}

func (s *PostgresSessionStore) Delete(ctx context.Context, tokenHash string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}

var _ SessionStore = (*PostgresSessionStore)(nil)
