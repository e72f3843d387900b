package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelofallars/crewdesk/internal/auth"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

// FakeAuth is an in-memory auth provider. Tokens are "token-<user id>".
type FakeAuth struct {
	mu        sync.Mutex
	users     map[string]auth.Credentials
	SignedOut []string
	SignUpErr error
}

func NewFakeAuth() *FakeAuth {
	return &FakeAuth{users: map[string]auth.Credentials{}}
}

func (f *FakeAuth) SignUp(_ context.Context, creds auth.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SignUpErr != nil {
		return "", f.SignUpErr
	}
	for _, u := range f.users {
		if u.Email == creds.Email {
			return "", ierr.NewError("user already registered").
				WithHint("User already registered").
				Mark(ierr.ErrValidation)
		}
	}
	id := fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[id] = creds
	return id, nil
}

func (f *FakeAuth) SignIn(_ context.Context, creds auth.Credentials) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u == creds {
			return &auth.Session{UserID: id, AccessToken: "token-" + id}, nil
		}
	}
	return nil, ierr.NewError("invalid login credentials").
		WithHint("Invalid email or password.").
		Mark(ierr.ErrUnauthorized)
}

func (f *FakeAuth) SignOut(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignedOut = append(f.SignedOut, accessToken)
	return nil
}

func (f *FakeAuth) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if token == "token-"+id {
			claims := &auth.Claims{Email: u.Email, Role: "authenticated"}
			claims.Subject = id
			return claims, nil
		}
	}
	return nil, ierr.NewError("unknown token").
		WithHint("Your session is invalid or has expired. Please sign in again.").
		Mark(ierr.ErrUnauthorized)
}
