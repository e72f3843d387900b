package supabase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const jobOrderColumns = "id,event_id,crew_id,rate,currency,unit"

type jobOrderRepository struct {
	c *Client
}

type jobOrderInsertRow struct {
	EventID  int64           `json:"event_id"`
	CrewID   int64           `json:"crew_id"`
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency,omitempty"`
	Unit     domain.Unit     `json:"unit"`
}

func (r *jobOrderRepository) ListByCrew(ctx context.Context, crewID int64) ([]*domain.JobOrder, error) {
	var rows []*domain.JobOrder
	err := r.c.run(ctx, "job_orders.list_by_crew", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableJobOrders).
			Select(jobOrderColumns).
			Eq("crew_id", idString(crewID)).
			ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobOrderRepository) CreateMany(ctx context.Context, orders []*domain.JobOrder) error {
	if len(orders) == 0 {
		return nil
	}
	rows := make([]jobOrderInsertRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, jobOrderInsertRow{
			EventID:  o.EventID,
			CrewID:   o.CrewID,
			Rate:     o.Rate,
			Currency: o.Currency,
			Unit:     o.Unit,
		})
	}

	var created []*domain.JobOrder
	return r.c.run(ctx, "job_orders.create_many", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableJobOrders).
			Insert(rows).
			ExecuteWithContext(ctx, &created)
	})
}

// UpsertMany sends every order in a single bulk upsert request, which
// PostgREST applies in one statement.
func (r *jobOrderRepository) UpsertMany(ctx context.Context, orders []*domain.JobOrder) error {
	if len(orders) == 0 {
		return nil
	}
	var upserted []*domain.JobOrder
	return r.c.run(ctx, "job_orders.upsert_many", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableJobOrders).
			Upsert(orders).
			ExecuteWithContext(ctx, &upserted)
	})
}
