package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/angelofallars/crewdesk/internal/domain"
)

type jobOrderRepository struct {
	db *DB
}

func (r *jobOrderRepository) ListByCrew(ctx context.Context, crewID int64) ([]*domain.JobOrder, error) {
	var rows []*domain.JobOrder
	err := r.db.run(ctx, "job_orders.list_by_crew", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, `
SELECT id, event_id, crew_id,
       COALESCE(rate, 0)       AS rate,
       COALESCE(currency, '')  AS currency,
       unit
FROM event_crew_job_orders
WHERE crew_id = $1
ORDER BY id`, crewID)
	})
	return rows, err
}

func (r *jobOrderRepository) CreateMany(ctx context.Context, orders []*domain.JobOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.inTx(ctx, "job_orders.create_many", func(ctx context.Context, tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, `
INSERT INTO event_crew_job_orders (event_id, crew_id, rate, currency, unit)
VALUES (:event_id, :crew_id, :rate, NULLIF(:currency, ''), :unit)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, order := range orders {
			if _, err := stmt.ExecContext(ctx, order); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertMany writes every order inside one transaction.
func (r *jobOrderRepository) UpsertMany(ctx context.Context, orders []*domain.JobOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.inTx(ctx, "job_orders.upsert_many", func(ctx context.Context, tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, `
INSERT INTO event_crew_job_orders (id, event_id, crew_id, rate, currency, unit)
VALUES (:id, :event_id, :crew_id, :rate, :currency, :unit)
ON CONFLICT (id) DO UPDATE
SET rate = EXCLUDED.rate, currency = EXCLUDED.currency, unit = EXCLUDED.unit`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, order := range orders {
			if _, err := stmt.ExecContext(ctx, order); err != nil {
				return err
			}
		}
		return nil
	})
}
