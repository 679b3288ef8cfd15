package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"blog/internal/models"
)

func TestUserFrom(t *testing.T) {
	ctx := context.Background()

	_, ok := UserFrom(ctx)
	assert.False(t, ok)

	user := &models.User{ID: 7, Username: "alicee"}
	got, ok := UserFrom(WithUser(ctx, user))
	assert.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = UserFrom(WithUser(ctx, nil))
	assert.False(t, ok)
}
