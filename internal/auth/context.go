package auth

import (
	"context"

	"blog/internal/models"
)

type ctxKeyUser struct{}

// WithUser attaches the authenticated user to the request context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, user)
}

// UserFrom returns the authenticated user for this request, if any.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(*models.User)
	return u, ok && u != nil
}
