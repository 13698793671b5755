package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentityProvider is the seam between the session store and whatever
// actually authenticates users. The store never depends on which
// implementation is wired in.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (User, error)
	Signup(ctx context.Context, email, password, name string) (User, error)
	GoogleLogin(ctx context.Context) (User, error)
}

// MockProvider accepts any non-empty credentials and derives the display
// name from the email local part. Stands in for a real identity backend.
type MockProvider struct{}

func (MockProvider) Login(_ context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	name, _, _ := strings.Cut(email, "@")
	return User{ID: uuid.NewString(), Email: email, Name: name}, nil
}

func (MockProvider) Signup(_ context.Context, email, password, name string) (User, error) {
	if email == "" || password == "" || name == "" {
		return User{}, ErrInvalidCredentials
	}
	return User{ID: uuid.NewString(), Email: email, Name: name}, nil
}

func (MockProvider) GoogleLogin(_ context.Context) (User, error) {
	return User{ID: "google_" + uuid.NewString(), Email: "user@gmail.com", Name: "Google User"}, nil
}
