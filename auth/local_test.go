package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go-task-backend/database"
	"go-task-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestProvider(t *testing.T, opts ...Option) *Local {
	db, err := database.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return NewLocal(db, "test-secret", time.Hour, opts...)
}

func TestCreateUserAndSignIn(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	created, err := p.CreateUser(ctx, " Ana@Example.com ", "secret1", Metadata{Name: "Ana", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.com", created.Email) // Stored normalized
	assert.Equal(t, models.RoleAdmin, created.Role)

	token, who, err := p.SignIn(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, who.ID)

	got, err := p.GetUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
}

func TestCreateUserValidation(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.CreateUser(ctx, "not-an-email", "secret1", Metadata{})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = p.CreateUser(ctx, "a@b.io", "123", Metadata{})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = p.CreateUser(ctx, "a@b.io", "secret1", Metadata{})
	require.NoError(t, err)
	_, err = p.CreateUser(ctx, "A@B.io", "secret2", Metadata{})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.CreateUser(ctx, "a@b.io", "secret1", Metadata{})
	require.NoError(t, err)

	_, _, err = p.SignIn(ctx, "a@b.io", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = p.SignIn(ctx, "nobody@b.io", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserRejectsBadTokens(t *testing.T) {
	now := time.Now()
	p := newTestProvider(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := p.CreateUser(ctx, "a@b.io", "secret1", Metadata{})
	require.NoError(t, err)
	token, _, err := p.SignIn(ctx, "a@b.io", "secret1")
	require.NoError(t, err)

	_, err = p.GetUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewLocal(p.db, "another-secret", time.Hour)
	_, err = other.GetUser(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken) // Wrong signing key

	now = now.Add(2 * time.Hour)
	_, err = p.GetUser(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken) // Expired
}

func TestUpdateUser(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	a, err := p.CreateUser(ctx, "a@b.io", "secret1", Metadata{Name: "A", Role: models.RoleUser})
	require.NoError(t, err)
	_, err = p.CreateUser(ctx, "taken@b.io", "secret1", Metadata{})
	require.NoError(t, err)

	_, err = p.UpdateUser(ctx, a.ID, "taken@b.io", Metadata{Name: "A"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := p.UpdateUser(ctx, a.ID, "new@b.io", Metadata{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "new@b.io", updated.Email)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleUser, updated.Role) // Role kept

	_, _, err = p.SignIn(ctx, "new@b.io", "secret1")
	assert.NoError(t, err)

	_, err = p.UpdateUser(ctx, "missing", "x@b.io", Metadata{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
