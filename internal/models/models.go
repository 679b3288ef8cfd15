package models

import "time"

// DefaultPicture is the placeholder every new account starts with.
const DefaultPicture = "default.jpg"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Picture      string
	CreatedAt    time.Time
}

// Session binds a server-side token hash to a user identity. The plaintext
// token lives only in the client's cookie; we persist its SHA-256.
type Session struct {
	ID        string
	UserID    int64
	TokenHash string
	Remember  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	Author    string
}
