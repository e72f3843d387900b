package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/invoice"
)

func (hg *HandlerGroup) handleListCrew(w http.ResponseWriter, r *http.Request) {
	roster, err := hg.services.Crew.Roster(r.Context())
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, roster)
}

func (hg *HandlerGroup) handleGetCrew(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	member, err := hg.services.Crew.Get(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, member)
}

func (hg *HandlerGroup) handleListJobOrders(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	orders, err := hg.services.JobOrders.List(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, orders)
}

type saveJobOrdersRequest struct {
	Edits []domain.JobOrderEdit `json:"edits"`
}

// saveJobOrdersRequest satisfies [render.Binder]
func (req *saveJobOrdersRequest) Bind(r *http.Request) error { return nil }

func (hg *HandlerGroup) handleSaveJobOrders(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	req := &saveJobOrdersRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return
	}

	saved, err := hg.services.JobOrders.SaveAll(r.Context(), id, req.Edits)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, saved)
}

type invoiceRequest struct {
	domain.InvoiceWindow
}

// invoiceRequest satisfies [render.Binder]
func (req *invoiceRequest) Bind(r *http.Request) error { return nil }

// previewResponse is a breakdown that was not stored.
type previewResponse struct {
	StartDate domain.Date       `json:"start_date"`
	EndDate   domain.Date       `json:"end_date"`
	Items     []domain.LineItem `json:"breakdown"`
	Currency  string            `json:"currency"`
	Total     decimal.Decimal   `json:"total"`
}

func newPreviewResponse(b *invoice.Breakdown) *previewResponse {
	return &previewResponse{
		StartDate: b.Window.Start,
		EndDate:   b.Window.End,
		Items:     b.Items,
		Currency:  b.Currency,
		Total:     b.Total,
	}
}

func (hg *HandlerGroup) bindInvoice(w http.ResponseWriter, r *http.Request) (int64, domain.InvoiceWindow, bool) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return 0, domain.InvoiceWindow{}, false
	}
	req := &invoiceRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return 0, domain.InvoiceWindow{}, false
	}
	return id, req.InvoiceWindow, true
}

func (hg *HandlerGroup) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	id, window, ok := hg.bindInvoice(w, r)
	if !ok {
		return
	}
	inv, err := hg.services.Invoices.Create(r.Context(), id, window)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	created(w, r, inv)
}

func (hg *HandlerGroup) handlePreviewInvoice(w http.ResponseWriter, r *http.Request) {
	id, window, ok := hg.bindInvoice(w, r)
	if !ok {
		return
	}
	breakdown, err := hg.services.Invoices.Preview(r.Context(), id, window)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, newPreviewResponse(breakdown))
}

func (hg *HandlerGroup) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	invoices, err := hg.services.Invoices.List(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, invoices)
}
