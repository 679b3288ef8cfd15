// Package validate checks candidate account data against structural rules
// and directory uniqueness. Validators are plain functions over an input
// struct plus the directory they consult, and report the first violated
// rule as a field-scoped error.
package validate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
)

// Username length bounds in characters.
const (
	MinUsernameLength = 5
	MaxUsernameLength = 25
)

// FieldError names the offending form field and a message the user can
// act on. It is recovered locally, never bubbled up as a Go error.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Directory is the slice of the user directory the validators consult.
// Satisfied by store.UserStore.
type Directory interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Registration checks a candidate account. Rules run in order and stop at
// the first violation; the directory is queried only once the structural
// rules pass. The second return value reports directory failures, which
// are not the caller's fault.
func Registration(ctx context.Context, dir Directory, in RegisterInput) (*FieldError, error) {
	if in.Username == "" {
		return required("username"), nil
	}
	if in.Email == "" {
		return required("email"), nil
	}
	if in.Password == "" {
		return required("password"), nil
	}
	if in.ConfirmPassword == "" {
		return required("confirm_password"), nil
	}

	if fe := usernameLength(in.Username); fe != nil {
		return fe, nil
	}
	if fe := emailSyntax(in.Email); fe != nil {
		return fe, nil
	}
	if utf8.RuneCountInString(in.Password) < auth.MinPasswordLength {
		return &FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength),
		}, nil
	}
	if in.ConfirmPassword != in.Password {
		return &FieldError{Field: "confirm_password", Message: "passwords do not match"}, nil
	}

	taken, err := usernameTaken(ctx, dir, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return &FieldError{Field: "username", Message: "this username is taken, please choose another one"}, nil
	}

	taken, err = emailTaken(ctx, dir, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return &FieldError{Field: "email", Message: "this email is taken, please choose another one"}, nil
	}

	return nil, nil
}

type AccountInput struct {
	Username string
	Email    string
	// Picture is the uploaded file's original name; empty when the user
	// keeps the current picture.
	Picture string
}

// AccountUpdate checks a profile edit for current. Uniqueness rules are
// skipped when the submitted value equals the user's own, so re-submitting
// an unchanged form never conflicts with itself.
func AccountUpdate(ctx context.Context, dir Directory, current *models.User, in AccountInput) (*FieldError, error) {
	if in.Username == "" {
		return required("username"), nil
	}
	if in.Email == "" {
		return required("email"), nil
	}

	if fe := usernameLength(in.Username); fe != nil {
		return fe, nil
	}
	if fe := emailSyntax(in.Email); fe != nil {
		return fe, nil
	}
	if in.Picture != "" && !AllowedPicture(in.Picture) {
		return &FieldError{Field: "picture", Message: "unsupported file type"}, nil
	}

	if in.Username != current.Username {
		taken, err := usernameTaken(ctx, dir, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return &FieldError{Field: "username", Message: "this username is taken, please choose another one"}, nil
		}
	}

	if in.Email != current.Email {
		taken, err := emailTaken(ctx, dir, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return &FieldError{Field: "email", Message: "this email is taken, please choose another one"}, nil
		}
	}

	return nil, nil
}

func required(field string) *FieldError {
	return &FieldError{Field: field, Message: "this field is required"}
}

func usernameLength(username string) *FieldError {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return &FieldError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength),
		}
	}
	return nil
}

func emailSyntax(email string) *FieldError {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &FieldError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

func usernameTaken(ctx context.Context, dir Directory, username string) (bool, error) {
	_, err := dir.ByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return true, nil
}

func emailTaken(ctx context.Context, dir Directory, email string) (bool, error) {
	_, err := dir.ByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}
