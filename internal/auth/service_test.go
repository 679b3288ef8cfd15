package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, username, email, picture string) error {
	return m.Called(ctx, id, username, email, picture).Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Create(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionStore) ByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	args := m.Called(ctx, tokenHash)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newService(users *mockUserStore, sessions *mockSessionStore) *auth.Service {
	return auth.NewService(users, sessions, 24*time.Hour, 30*24*time.Hour)
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Username:     "alicee",
		Email:        "a@x.com",
		PasswordHash: hash,
		Picture:      models.DefaultPicture,
	}
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates session", func(t *testing.T) {
		users := &mockUserStore{}
		sessions := &mockSessionStore{}
		user := testUser(t, "secret1")

		users.On("ByEmail", ctx, "a@x.com").Return(user, nil)
		var created *models.Session
		sessions.On("Create", ctx, mock.AnythingOfType("*models.Session")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*models.Session) }).
			Return(nil)

		token, session, err := newService(users, sessions).Login(ctx, "a@x.com", "secret1", false)
		require.NoError(t, err)
		assert.Len(t, token, 64)
		assert.Equal(t, user.ID, session.UserID)
		require.NotNil(t, created)
		assert.Equal(t, auth.HashToken(token), created.TokenHash)
		assert.NotContains(t, created.TokenHash, token)
		assert.False(t, created.Remember)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), created.ExpiresAt, time.Minute)
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		users := &mockUserStore{}
		sessions := &mockSessionStore{}
		user := testUser(t, "secret1")

		users.On("ByEmail", ctx, "a@x.com").Return(user, nil)
		sessions.On("Create", ctx, mock.Anything).Return(nil)

		_, _, err := newService(users, sessions).Login(ctx, "  A@X.Com ", "secret1", false)
		require.NoError(t, err)
	})

	t.Run("remember extends the session lifetime", func(t *testing.T) {
		users := &mockUserStore{}
		sessions := &mockSessionStore{}
		user := testUser(t, "secret1")

		users.On("ByEmail", ctx, "a@x.com").Return(user, nil)
		var created *models.Session
		sessions.On("Create", ctx, mock.AnythingOfType("*models.Session")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*models.Session) }).
			Return(nil)

		_, _, err := newService(users, sessions).Login(ctx, "a@x.com", "secret1", true)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.Remember)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), created.ExpiresAt, time.Minute)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		users := &mockUserStore{}
		sessions := &mockSessionStore{}
		user := testUser(t, "secret1")

		users.On("ByEmail", ctx, "a@x.com").Return(user, nil)
		users.On("ByEmail", ctx, "ghost@x.com").Return(nil, store.ErrNotFound)

		svc := newService(users, sessions)

		_, _, errWrongPassword := svc.Login(ctx, "a@x.com", "wrong", false)
		_, _, errUnknownEmail := svc.Login(ctx, "ghost@x.com", "secret1", false)

		assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidLogin)
		assert.ErrorIs(t, errUnknownEmail, auth.ErrInvalidLogin)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes session by token hash", func(t *testing.T) {
		sessions := &mockSessionStore{}
		sessions.On("Delete", ctx, auth.HashToken("tok")).Return(nil)

		err := newService(&mockUserStore{}, sessions).Logout(ctx, "tok")
		require.NoError(t, err)
		sessions.AssertExpectations(t)
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		sessions := &mockSessionStore{}
		err := newService(&mockUserStore{}, sessions).Logout(ctx, "")
		require.NoError(t, err)
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestServiceUserFromToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resolves the user", func(t *testing.T) {
		users := &mockUserStore{}
		sessions := &mockSessionStore{}
		user := testUser(t, "secret1")

		sessions.On("ByTokenHash", ctx, auth.HashToken("tok")).Return(&models.Session{
			UserID:    user.ID,
			TokenHash: auth.HashToken("tok"),
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("ByID", ctx, user.ID).Return(user, nil)

		got, err := newService(users, sessions).UserFromToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("unknown token", func(t *testing.T) {
		sessions := &mockSessionStore{}
		sessions.On("ByTokenHash", ctx, mock.Anything).Return(nil, store.ErrNotFound)

		_, err := newService(&mockUserStore{}, sessions).UserFromToken(ctx, "tok")
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("expired session", func(t *testing.T) {
		sessions := &mockSessionStore{}
		sessions.On("ByTokenHash", ctx, mock.Anything).Return(&models.Session{
			UserID:    1,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		_, err := newService(&mockUserStore{}, sessions).UserFromToken(ctx, "tok")
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := newService(&mockUserStore{}, &mockSessionStore{}).UserFromToken(ctx, "")
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})
}
