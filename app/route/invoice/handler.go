package invoice

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/service"
)

type HandlerGroup struct {
	log      *logger.Logger
	invoices service.InvoiceService
}

func NewHandlerGroup(log *logger.Logger, services *service.Services) *HandlerGroup {
	return &HandlerGroup{log: log, invoices: services.Invoices}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Post("/crew/{id}/invoices", hg.handleCreateInvoice)
}

// handleCreateInvoice stores the invoice and answers with its PDF.
func (hg *HandlerGroup) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	crewID, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	req := &CreateInvoiceRequest{}
	if err := respond.Bind(r, req); err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	doc, err := hg.invoices.Generate(r.Context(), crewID, req.window)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	_, _ = w.Write(doc.Content)
}

type CreateInvoiceRequest struct {
	StartDate string `form:"start-date"`
	EndDate   string `form:"end-date"`

	window domain.InvoiceWindow
}

// CreateInvoiceRequest satisfies [render.Binder]. Missing bounds are left
// for the invoice service to reject.
func (cir *CreateInvoiceRequest) Bind(r *http.Request) error {
	start, err := respond.DateValue("Start date", cir.StartDate)
	if err != nil {
		return err
	}
	end, err := respond.DateValue("End date", cir.EndDate)
	if err != nil {
		return err
	}
	cir.window = domain.InvoiceWindow{Start: start, End: end}
	return nil
}
