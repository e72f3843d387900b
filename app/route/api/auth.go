package api

import (
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/render"

	appauth "github.com/angelofallars/crewdesk/app/auth"
	"github.com/angelofallars/crewdesk/app/event"
	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/service"
	"github.com/angelofallars/crewdesk/internal/validator"
)

// credentialsRequest accepts JSON bodies and the htmx sign in form.
type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// credentialsRequest satisfies [render.Binder]
func (req *credentialsRequest) Bind(r *http.Request) error {
	req.Email = strings.TrimSpace(req.Email)
	return validator.ValidateRequest(req.credentials())
}

func (req *credentialsRequest) credentials() auth.Credentials {
	return auth.Credentials{Email: req.Email, Password: req.Password}
}

type signUpRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"full_name" form:"full_name"`
	Type     string `json:"type" form:"type"`
}

// signUpRequest satisfies [render.Binder]
func (req *signUpRequest) Bind(r *http.Request) error { return nil }

func (hg *HandlerGroup) handleSignUp(w http.ResponseWriter, r *http.Request) {
	req := &signUpRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return
	}

	member, err := hg.services.Crew.SignUp(r.Context(), service.SignUpRequest{
		Credentials: auth.Credentials{Email: req.Email, Password: req.Password},
		FullName:    req.FullName,
		Type:        req.Type,
	})
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().
			StatusCode(http.StatusCreated).
			Redirect("/signin").
			AddTrigger(event.TriggerSetNotice("Account created. You can sign in now.")).
			Write(w)
		return
	}
	created(w, r, member)
}

func (hg *HandlerGroup) handleSignIn(w http.ResponseWriter, r *http.Request) {
	req := &credentialsRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return
	}

	session, err := hg.auth.SignIn(r.Context(), req.credentials())
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     appauth.AccessTokenCookie,
		Value:    session.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   hg.secure,
		SameSite: http.SameSiteLaxMode,
	})

	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().Redirect("/").Write(w)
		return
	}
	render.JSON(w, r, session)
}

// handleSignOut ends the provider session and clears every provider cookie
// even when the provider call fails.
func (hg *HandlerGroup) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if token := appauth.AccessToken(r); token != "" {
		if err := hg.auth.SignOut(r.Context(), token); err != nil {
			hg.log.Warnw("provider sign out failed", "error", err)
		}
	}

	cleared := map[string]bool{appauth.AccessTokenCookie: true}
	for _, c := range r.Cookies() {
		if strings.HasPrefix(c.Name, appauth.CookiePrefix) {
			cleared[c.Name] = true
		}
	}
	for name := range cleared {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   hg.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().Redirect("/signin").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
