package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/service"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	host string
	port int

	cfg    *config.Configuration
	logger *logger.Logger
	router chi.Router

	auth     auth.Provider
	services *service.Services
}

func New(cfg *config.Configuration, log *logger.Logger, provider auth.Provider, services *service.Services) *App {
	app := &App{
		host: cfg.Server.Host,
		port: int(cfg.Server.Port),

		cfg:    cfg,
		logger: log,
		router: chi.NewRouter(),

		auth:     provider,
		services: services,
	}

	app.RegisterRoutes()

	return app
}

func (a *App) WithHost(host string) *App {
	a.host = host
	return a
}

func (a *App) WithPort(port uint) *App {
	a.port = int(port)
	return a
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Serve listens until ctx is done, then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	server := &http.Server{
		Addr:    addr,
		Handler: a.router,

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.cfg.Server.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infow("server started listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
