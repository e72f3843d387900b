package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceWindow is the inclusive date range an invoice covers.
type InvoiceWindow struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

// LineItem is one job order priced over the part of its event that falls in
// the invoice window.
type LineItem struct {
	JobOrderID   int64           `json:"job_order_id"`
	EventTitle   string          `json:"event_title"`
	Rate         decimal.Decimal `json:"rate"`
	Currency     string          `json:"currency"`
	Unit         Unit            `json:"unit"`
	BillableDays int             `json:"billable_days"`
	Total        decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID          int64           `json:"id,omitempty"`
	CrewID      int64           `json:"crew_id"`
	StartDate   Date            `json:"start_date"`
	EndDate     Date            `json:"end_date"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	JobOrderIDs []int64         `json:"job_order_ids"`
	Breakdown   []LineItem      `json:"breakdown"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}
