// provider.go - Authentication provider contract
//
// Handlers only see this interface. The local implementation keeps accounts in the
// application database and issues signed JWTs; a hosted identity service can be
// plugged in by implementing the same four calls.

package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken         = errors.New("a user with this email address has already been registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
)

const minPasswordLen = 6

// Identity is the authenticated caller as the provider knows it.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Metadata is the profile data the provider stores next to the credentials.
type Metadata struct {
	Name string
	Role string
}

type Provider interface {
	CreateUser(ctx context.Context, email, password string, meta Metadata) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (string, *Identity, error)
	GetUser(ctx context.Context, token string) (*Identity, error)
	UpdateUser(ctx context.Context, id, email string, meta Metadata) (*Identity, error)
}
