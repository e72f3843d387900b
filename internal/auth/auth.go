// Package auth delegates sign-up and sign-in to Supabase Auth and verifies
// the access tokens it issues.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	supabase "github.com/nedpals/supabase-go"

	"github.com/angelofallars/crewdesk/internal/config"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Session struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Claims are the parts of a Supabase access token crewdesk reads.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

type Provider interface {
	SignUp(ctx context.Context, creds Credentials) (userID string, err error)
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type supabaseAuth struct {
	client    *supabase.Client
	jwtSecret []byte
}

// NewSupabaseAuth wraps an already constructed client.
func NewSupabaseAuth(cfg *config.Configuration, client *supabase.Client) Provider {
	return &supabaseAuth{
		client:    client,
		jwtSecret: []byte(cfg.Supabase.JWTSecret),
	}
}

func (s *supabaseAuth) SignUp(ctx context.Context, creds Credentials) (string, error) {
	user, err := s.client.Auth.SignUp(ctx, supabase.UserCredentials{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Sign up failed.").
			Mark(ierr.ErrValidation)
	}
	if user == nil || user.ID == "" {
		return "", ierr.NewError("user id missing from sign up response").
			WithHint("User ID not returned after sign-up.").
			Mark(ierr.ErrHTTPClient)
	}
	return user.ID, nil
}

func (s *supabaseAuth) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	details, err := s.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid email or password.").
			Mark(ierr.ErrUnauthorized)
	}
	return &Session{
		UserID:       details.User.ID,
		AccessToken:  details.AccessToken,
		RefreshToken: details.RefreshToken,
	}, nil
}

func (s *supabaseAuth) SignOut(ctx context.Context, accessToken string) error {
	if err := s.client.Auth.SignOut(ctx, accessToken); err != nil {
		return ierr.WithError(err).
			WithHint("Sign out failed.").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func (s *supabaseAuth) ValidateToken(_ context.Context, token string) (*Claims, error) {
	return ParseToken(token, s.jwtSecret)
}

// ParseToken verifies an HS256 signed Supabase access token.
func ParseToken(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", t.Header["alg"]).
				Mark(ierr.ErrUnauthorized)
		}
		return secret, nil
	})
	if err == nil && !parsed.Valid {
		err = ierr.NewError("token is not valid").Mark(ierr.ErrUnauthorized)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Your session is invalid or has expired. Please sign in again.").
			Mark(ierr.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, ierr.NewError("token missing subject").
			WithHint("Your session is invalid. Please sign in again.").
			Mark(ierr.ErrUnauthorized)
	}
	return claims, nil
}
