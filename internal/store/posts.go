package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog/internal/models"
)

// PostStore persists authored posts.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	// ByID returns ErrNotFound when no such post exists.
	ByID(ctx context.Context, id int64) (*models.Post, error)

	// All returns every post, newest first, with the author's username.
	All(ctx context.Context) ([]models.Post, error)

	// Update replaces title and content; ErrNotFound when absent.
	Update(ctx context.Context, id int64, title, content string) error
}

type PostgresPostStore struct {
	db *sql.DB
}

func NewPostgresPostStore(db *sql.DB) *PostgresPostStore {
	return &PostgresPostStore{db: db}
}

func (s *PostgresPostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `INSERT INTO posts (user_id, title, content)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, post.UserID, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (s *PostgresPostStore) ByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT p.id, p.user_id, p.title, p.content, p.created_at, u.username
	          FROM posts p
	          JOIN users u ON u.id = p.user_id
	          WHERE p.id = $1`

	p := &models.Post{}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return p, nil
}

func (s *PostgresPostStore) All(ctx context.Context) ([]models.Post, error) {
	query := `SELECT p.id, p.user_id, p.title, p.content, p.created_at, u.username
	          FROM posts p
	          JOIN users u ON u.id = p.user_id
	          ORDER BY p.created_at DESC, p.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.Author); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (s *PostgresPostStore) Update(ctx context.Context, id int64, title, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = $2, content = $3 WHERE id = $1`,
		id, title, content,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ PostStore = (*PostgresPostStore)(nil)
