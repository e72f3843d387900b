// Package invoice prices a crew member's job orders over an invoice window.
// Everything here is pure: the same inputs always give the same breakdown.
package invoice

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

// Breakdown is the priced result for one window.
type Breakdown struct {
	Window   domain.InvoiceWindow
	Items    []domain.LineItem
	Currency string
	Total    decimal.Decimal
}

// ValidateWindow checks that both bounds are present and ordered.
func ValidateWindow(w domain.InvoiceWindow) error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ierr.NewError("invoice window is missing a bound").
			WithHint("Please select both start and end dates.").
			Mark(ierr.ErrValidation)
	}
	if w.Start.After(w.End) {
		return ierr.NewErrorf("invoice window starts %s after it ends %s", w.Start, w.End).
			WithHint("The start date must not be after the end date.").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillableDays returns the number of days event overlaps w, counting both
// boundary days. ok is false when they do not overlap, or when the stored
// event ends before it starts.
func BillableDays(w domain.InvoiceWindow, event *domain.Event) (days int, ok bool) {
	if event.EndDate.Before(event.StartDate) || !event.Overlaps(w.Start, w.End) {
		return 0, false
	}
	clipStart := domain.MaxDate(w.Start, event.StartDate)
	clipEnd := domain.MinDate(w.End, event.EndDate)
	days = clipStart.DaysUntil(clipEnd) + 1
	if days < 1 {
		return 0, false
	}
	return days, true
}

// LineTotal prices days of work at rate per unit.
func LineTotal(rate decimal.Decimal, unit domain.Unit, days int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(unit.Periods(days)))
}

// Calculate builds the breakdown for the job orders whose events overlap
// the window. Job orders whose event is not in events are skipped. Line
// items keep the order of jobOrders. Job orders without a currency are
// billed in defaultCurrency; lines in more than one currency are rejected.
func Calculate(w domain.InvoiceWindow, jobOrders []*domain.JobOrder, events []*domain.Event, defaultCurrency string) (*Breakdown, error) {
	if err := ValidateWindow(w); err != nil {
		return nil, err
	}

	eventsByID := lo.KeyBy(events, func(e *domain.Event) int64 { return e.ID })

	items := make([]domain.LineItem, 0, len(jobOrders))
	for _, job := range jobOrders {
		event, found := eventsByID[job.EventID]
		if !found {
			continue
		}

		days, ok := BillableDays(w, event)
		if !ok {
			continue
		}

		items = append(items, domain.LineItem{
			JobOrderID:   job.ID,
			EventTitle:   event.Title,
			Rate:         job.Rate,
			Currency:     job.CurrencyOr(defaultCurrency),
			Unit:         job.Unit,
			BillableDays: days,
			Total:        LineTotal(job.Rate, job.Unit, days),
		})
	}

	currencies := lo.Uniq(lo.Map(items, func(item domain.LineItem, _ int) string { return item.Currency }))
	if len(currencies) > 1 {
		return nil, ierr.NewErrorf("invoice lines use %d currencies", len(currencies)).
			WithHintf("Job orders in this window are priced in different currencies (%v); align them before invoicing.", currencies).
			WithReportableDetails(map[string]any{"currencies": currencies}).
			Mark(ierr.ErrValidation)
	}

	currency := defaultCurrency
	if len(currencies) == 1 {
		currency = currencies[0]
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}

	return &Breakdown{
		Window:   w,
		Items:    items,
		Currency: currency,
		Total:    total,
	}, nil
}

// JobOrderIDs lists the job orders included in the breakdown.
func (b *Breakdown) JobOrderIDs() []int64 {
	return lo.Map(b.Items, func(item domain.LineItem, _ int) int64 { return item.JobOrderID })
}

// Invoice turns the breakdown into the record persisted for crewID.
func (b *Breakdown) Invoice(crewID int64) *domain.Invoice {
	return &domain.Invoice{
		CrewID:      crewID,
		StartDate:   b.Window.Start,
		EndDate:     b.Window.End,
		Total:       b.Total,
		Currency:    b.Currency,
		JobOrderIDs: b.JobOrderIDs(),
		Breakdown:   b.Items,
	}
}
