package domain

import "github.com/shopspring/decimal"

// JobOrder is the agreed rate for one crew member on one event.
type JobOrder struct {
	ID       int64           `json:"id" db:"id"`
	EventID  int64           `json:"event_id" db:"event_id"`
	CrewID   int64           `json:"crew_id" db:"crew_id"`
	Rate     decimal.Decimal `json:"rate" db:"rate"`
	Currency string          `json:"currency" db:"currency"`
	Unit     Unit            `json:"unit" db:"unit"`
}

// CurrencyOr returns the job order currency, or fallback when unset.
func (j *JobOrder) CurrencyOr(fallback string) string {
	if j.Currency == "" {
		return fallback
	}
	return j.Currency
}

// JobOrderEdit is a staged change to a job order's pricing.
type JobOrderEdit struct {
	ID       int64           `json:"id" validate:"required"`
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Unit     Unit            `json:"unit"`
}
