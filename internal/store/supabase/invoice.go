package supabase

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const invoiceColumns = "id,crew_id,start_date,end_date,total,job_order_ids,breakdown,created_at"

type invoiceRepository struct {
	c *Client
}

// invoiceRow mirrors the invoices table. The currency is not a column; it
// is carried by the breakdown lines.
type invoiceRow struct {
	ID          int64             `json:"id,omitempty"`
	CrewID      int64             `json:"crew_id"`
	StartDate   domain.Date       `json:"start_date"`
	EndDate     domain.Date       `json:"end_date"`
	Total       decimal.Decimal   `json:"total"`
	JobOrderIDs []int64           `json:"job_order_ids"`
	Breakdown   []domain.LineItem `json:"breakdown"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`
}

func (row *invoiceRow) toDomain() *domain.Invoice {
	inv := &domain.Invoice{
		ID:          row.ID,
		CrewID:      row.CrewID,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Total:       row.Total,
		JobOrderIDs: row.JobOrderIDs,
		Breakdown:   row.Breakdown,
		CreatedAt:   row.CreatedAt,
	}
	if len(row.Breakdown) > 0 {
		inv.Currency = row.Breakdown[0].Currency
	}
	return inv
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	row := invoiceRow{
		CrewID:      inv.CrewID,
		StartDate:   inv.StartDate,
		EndDate:     inv.EndDate,
		Total:       inv.Total,
		JobOrderIDs: inv.JobOrderIDs,
		Breakdown:   inv.Breakdown,
	}
	if row.JobOrderIDs == nil {
		row.JobOrderIDs = []int64{}
	}
	if row.Breakdown == nil {
		row.Breakdown = []domain.LineItem{}
	}

	var created []*invoiceRow
	err := r.c.run(ctx, "invoices.create", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableInvoices).
			Insert(row).
			ExecuteWithContext(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	out := *inv
	if len(created) > 0 {
		out.ID = created[0].ID
		out.CreatedAt = created[0].CreatedAt
	}
	return &out, nil
}

func (r *invoiceRepository) ListByCrew(ctx context.Context, crewID int64) ([]*domain.Invoice, error) {
	var rows []*invoiceRow
	err := r.c.run(ctx, "invoices.list_by_crew", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableInvoices).
			Select(invoiceColumns).
			Eq("crew_id", idString(crewID)).
			ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}

	// newest first
	slices.SortFunc(rows, func(a, b *invoiceRow) int {
		return cmp.Compare(b.ID, a.ID)
	})

	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, row.toDomain())
	}
	return invoices, nil
}
