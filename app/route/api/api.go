// Package api serves the JSON API mounted under /api.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/service"
)

type HandlerGroup struct {
	log      *logger.Logger
	auth     auth.Provider
	services *service.Services
	secure   bool
}

// NewHandlerGroup builds the API handlers. secure marks session cookies
// Secure.
func NewHandlerGroup(log *logger.Logger, provider auth.Provider, services *service.Services, secure bool) *HandlerGroup {
	return &HandlerGroup{
		log:      log,
		auth:     provider,
		services: services,
		secure:   secure,
	}
}

// MountPublic registers the routes that work without a session.
func (hg *HandlerGroup) MountPublic(r chi.Router) {
	r.Post("/auth/signup", hg.handleSignUp)
	r.Post("/auth/signin", hg.handleSignIn)
	r.Post("/auth/signout", hg.handleSignOut)
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Route("/crew", func(r chi.Router) {
		r.Get("/", hg.handleListCrew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", hg.handleGetCrew)
			r.Get("/job-orders", hg.handleListJobOrders)
			r.Put("/job-orders", hg.handleSaveJobOrders)
			r.Get("/invoices", hg.handleListInvoices)
			r.Post("/invoices", hg.handleCreateInvoice)
			r.Post("/invoices/preview", hg.handlePreviewInvoice)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", hg.handleListEvents)
		r.Get("/active", hg.handleActiveEvents)
		r.Post("/", hg.handleCreateEvent)
		r.Put("/{id}", hg.handleUpdateEvent)
		r.Post("/{id}/files", hg.handleUploadEventFile)
	})
}

func (hg *HandlerGroup) fail(w http.ResponseWriter, r *http.Request, err error) {
	respond.JSONError(w, r, hg.log, err)
}

func created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
