package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/angelofallars/crewdesk/app"
	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/pdf"
	"github.com/angelofallars/crewdesk/internal/service"
	"github.com/angelofallars/crewdesk/internal/storage"
	"github.com/angelofallars/crewdesk/internal/store/cache"
	"github.com/angelofallars/crewdesk/internal/store/postgres"
	"github.com/angelofallars/crewdesk/internal/store/supabase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// The same client serves the PostgREST stores and Supabase Auth.
	sb, err := supabase.NewClient(cfg)
	if err != nil {
		return err
	}

	var stores *domain.Stores
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.NewDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()
		stores = postgres.NewStores(db)
	default:
		stores = supabase.NewStores(sb, cfg, log)
	}
	stores.Crew = cache.WrapCrew(cfg, stores.Crew)

	provider := auth.NewSupabaseAuth(cfg, sb)

	params := service.Params{
		Logger:   log,
		Config:   cfg,
		Stores:   stores,
		Renderer: pdf.NewRenderer(),
		Auth:     provider,
	}

	objects, err := storage.NewService(ctx, cfg)
	if err != nil {
		return err
	}
	if objects != nil {
		params.Storage = objects
	}

	avatarPath := filepath.Join(cfg.Server.StaticDir, "images", "user", "owner.jpg")
	if params.PlaceholderAvatar, err = os.ReadFile(avatarPath); err != nil {
		log.Warnw("placeholder avatar not found, new crew members get the default avatar", "path", avatarPath, "error", err)
	}

	server := app.New(cfg, log, provider, service.New(params))
	return server.Serve(ctx)
}
