package session

import (
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/crewdesk/app/component"
)

type HandlerGroup struct{}

func NewHandlerGroup() *HandlerGroup {
	return &HandlerGroup{}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Handle("/signin", templ.Handler(component.FullPage("Sign in", signInForm())))
	r.Handle("/signup", templ.Handler(component.FullPage("Create account", signUpForm())))
}

func signInForm() templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Open("form", templ.Attributes{"hx-post": "/api/auth/signin", "hx-swap": "none"})
		p.Raw(`<label>Email <input type="email" name="email" required></label>`)
		p.Raw(`<label>Password <input type="password" name="password" required minlength="6"></label>`)
		p.Elem("button", "Sign in", templ.Attributes{"type": "submit"})
		p.Close("form")
		p.Elem("a", "Create an account", templ.Attributes{"href": "/signup"})
	})
}

func signUpForm() templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Open("form", templ.Attributes{"hx-post": "/api/auth/signup", "hx-swap": "none"})
		p.Raw(`<label>Full name <input type="text" name="full_name" required></label>`)
		p.Raw(`<label>Email <input type="email" name="email" required></label>`)
		p.Raw(`<label>Password <input type="password" name="password" required minlength="6"></label>`)
		p.Raw(`<label>Type <select name="type"><option>Freelancer</option><option>Full-time</option></select></label>`)
		p.Elem("button", "Create account", templ.Attributes{"type": "submit"})
		p.Close("form")
	})
}
