package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/internal/domain"
)

type invoiceRepository struct {
	db *DB
}

type invoiceRow struct {
	ID          int64           `db:"id"`
	CrewID      int64           `db:"crew_id"`
	StartDate   domain.Date     `db:"start_date"`
	EndDate     domain.Date     `db:"end_date"`
	Total       decimal.Decimal `db:"total"`
	JobOrderIDs pq.Int64Array   `db:"job_order_ids"`
	Breakdown   []byte          `db:"breakdown"`
	CreatedAt   *time.Time      `db:"created_at"`
}

func (row *invoiceRow) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:          row.ID,
		CrewID:      row.CrewID,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Total:       row.Total,
		JobOrderIDs: []int64(row.JobOrderIDs),
		CreatedAt:   row.CreatedAt,
	}
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &inv.Breakdown); err != nil {
			return nil, err
		}
	}
	if len(inv.Breakdown) > 0 {
		inv.Currency = inv.Breakdown[0].Currency
	}
	return inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	breakdown := inv.Breakdown
	if breakdown == nil {
		breakdown = []domain.LineItem{}
	}
	payload, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}

	created := *inv
	err = r.db.run(ctx, "invoices.create", func(ctx context.Context) error {
		return r.db.QueryRowxContext(ctx, `
INSERT INTO invoices (crew_id, start_date, end_date, total, job_order_ids, breakdown)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`,
			inv.CrewID, inv.StartDate, inv.EndDate, inv.Total, pq.Array(inv.JobOrderIDs), payload,
		).Scan(&created.ID, &created.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *invoiceRepository) ListByCrew(ctx context.Context, crewID int64) ([]*domain.Invoice, error) {
	var rows []*invoiceRow
	err := r.db.run(ctx, "invoices.list_by_crew", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, `
SELECT id, crew_id, start_date, end_date, total, job_order_ids, breakdown, created_at
FROM invoices
WHERE crew_id = $1
ORDER BY id DESC`, crewID)
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
