// Package postgres implements the domain repositories directly against the
// Supabase Postgres database.
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/logger"
)

// DB wraps sqlx.DB with the per call timeout and logging used by every
// repository.
type DB struct {
	*sqlx.DB
	timeout time.Duration
	logger  *logger.Logger
}

func NewDB(cfg *config.Configuration, log *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not connect to the database.").
			Mark(ierr.ErrDatabase)
	}
	return &DB{DB: db, timeout: cfg.Store.Timeout, logger: log.With("store", "postgres")}, nil
}

func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("closing database", "error", err)
	}
}

// NewStores builds every repository over db.
func NewStores(db *DB) *domain.Stores {
	return &domain.Stores{
		Crew:      &crewRepository{db: db},
		Events:    &eventRepository{db: db},
		EventCrew: &eventCrewRepository{db: db},
		JobOrders: &jobOrderRepository{db: db},
		Invoices:  &invoiceRepository{db: db},
	}
}

func (db *DB) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	db.logger.Debugw("sql query", "op", op, "duration", time.Since(start), "error", err)
	if err != nil {
		return ierr.WithError(err).
			WithHint("The data store request failed. Please try again.").
			WithMessagef("op:%s", op).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// inTx runs fn in a transaction that is rolled back unless fn succeeds.
func (db *DB) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	return db.run(ctx, op, func(ctx context.Context) error {
		tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		if err := fn(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

func notFound(entity string, id int64) error {
	return ierr.NewErrorf("%s %d not found", entity, id).
		WithHintf("The requested %s does not exist.", entity).
		Mark(ierr.ErrNotFound)
}
