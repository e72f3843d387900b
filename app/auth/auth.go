// Package auth guards routes with the Supabase session of the caller.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/render"

	"github.com/angelofallars/crewdesk/app/event"
	coreauth "github.com/angelofallars/crewdesk/internal/auth"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

// AccessTokenCookie holds the access token set on sign in.
const AccessTokenCookie = "sb-access-token"

// CookiePrefix is shared by every cookie the auth provider owns.
const CookiePrefix = "sb-"

// AccessToken reads the token from the session cookie or a bearer
// Authorization header.
func AccessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// RequireSession rejects requests without a valid access token and stores
// the token claims in the request context.
func RequireSession(provider coreauth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AccessToken(r)
			if token == "" {
				unauthorized(w, r, ierr.NewError("missing access token").
					WithHint("Please sign in to continue.").
					Mark(ierr.ErrUnauthorized))
				return
			}

			claims, err := provider.ValidateToken(r.Context(), token)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, claims)))
		})
	}
}

// GetSession returns the claims stored by RequireSession.
func GetSession(ctx context.Context) (*coreauth.Claims, error) {
	claims, ok := ctx.Value(sessionKey).(*coreauth.Claims)
	if !ok {
		return nil, ierr.NewError("session not found in context").
			WithHint("Please sign in to continue.").
			Mark(ierr.ErrUnauthorized)
	}
	return claims, nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	message := ierr.DisplayMessage(err)

	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().
			StatusCode(http.StatusUnauthorized).
			Reswap(htmx.SwapNone).
			AddTrigger(
				event.TriggerSessionExpired,
				event.TriggerSetErrMessage(message),
			).
			Write(w)
		return
	}

	if render.GetAcceptedContentType(r) == render.ContentTypeHTML {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": message})
}

type key struct{}

var sessionKey = key{}
