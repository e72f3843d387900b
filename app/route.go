package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appauth "github.com/angelofallars/crewdesk/app/auth"
	"github.com/angelofallars/crewdesk/app/route/api"
	"github.com/angelofallars/crewdesk/app/route/crew"
	"github.com/angelofallars/crewdesk/app/route/dashboard"
	"github.com/angelofallars/crewdesk/app/route/event"
	"github.com/angelofallars/crewdesk/app/route/invoice"
	"github.com/angelofallars/crewdesk/app/route/session"
	"github.com/angelofallars/crewdesk/internal/logger"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(requestLogger(a.logger))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(a.cfg.Server.RequestTimeout))

	apiGroup := api.NewHandlerGroup(a.logger, a.auth, a.services, a.cfg.Server.SecureCookies)
	session.NewHandlerGroup().Mount(a.router)

	a.router.Group(func(r chi.Router) {
		r.Use(a.requireSession())
		dashboard.NewHandlerGroup(a.logger, a.services).Mount(r)
		crew.NewHandlerGroup(a.logger, a.services).Mount(r)
		event.NewHandlerGroup(a.logger, a.services).Mount(r)
		invoice.NewHandlerGroup(a.logger, a.services).Mount(r)
	})

	a.router.Route("/api", func(r chi.Router) {
		apiGroup.MountPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(a.requireSession())
			apiGroup.Mount(r)
		})
	})

	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(a.cfg.Server.StaticDir))))
}

// requireSession guards routes only when tokens can be verified.
func (a *App) requireSession() func(http.Handler) http.Handler {
	if a.auth == nil || a.cfg.Supabase.JWTSecret == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return appauth.RequireSession(a.auth)
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Infow("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
