package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"blog/internal/dbx"
	"blog/internal/models"
)

// UserStore is the user directory: lookups for authentication and
// uniqueness checks, plus the two mutations the app performs.
type UserStore interface {
	// Create inserts the user and fills in the assigned ID. Unique
	// violations surface as ErrUsernameTaken / ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// ByID returns ErrNotFound when no such user exists.
	ByID(ctx context.Context, id int64) (*models.User, error)

	// ByUsername is an exact, case-sensitive match.
	ByUsername(ctx context.Context, username string) (*models.User, error)

	// ByEmail matches the stored (lowercased) email.
	ByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile replaces username, email and picture in one
	// transaction. Unique violations surface like Create's.
	UpdateProfile(ctx context.Context, id int64, username, email, picture string) error
}

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, email, username, password_hash, picture, created_at`

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (email, username, password_hash, picture)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Picture,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if taken := takenErr(err); taken != nil {
			return nil, taken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (s *PostgresUserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *PostgresUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id int64, username, email, picture string) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET username = $2, email = $3, picture = $4 WHERE id = $1`,
			id, username, email, picture,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if taken := takenErr(err); taken != nil {
			return taken
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Picture, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// takenErr maps a Postgres unique violation on the users table to the
// matching sentinel, or returns nil for everything else.
func takenErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrEmailTaken
	default:
		return nil
	}
}

var _ UserStore = (*PostgresUserStore)(nil)
