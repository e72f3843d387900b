package crew

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/service"
)

type HandlerGroup struct {
	log       *logger.Logger
	crew      service.CrewService
	jobOrders service.JobOrderService
	invoices  service.InvoiceService
}

func NewHandlerGroup(log *logger.Logger, services *service.Services) *HandlerGroup {
	return &HandlerGroup{
		log:       log,
		crew:      services.Crew,
		jobOrders: services.JobOrders,
		invoices:  services.Invoices,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/crew", hg.handleRoster)
	r.Get("/crew/{id}", hg.handleProfile)
	r.Post("/crew/{id}/job-orders", hg.handleSaveJobOrders)
}

func (hg *HandlerGroup) handleRoster(w http.ResponseWriter, r *http.Request) {
	members, err := hg.crew.Roster(r.Context())
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}
	respond.Page(w, r, "Crew", roster(members))
}

func (hg *HandlerGroup) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	member, err := hg.crew.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	orders, err := hg.jobOrders.List(r.Context(), id)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	invoices, err := hg.invoices.List(r.Context(), id)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	respond.Page(w, r, member.FullName, profile(profileProps{
		Member:    member,
		JobOrders: orders,
		Invoices:  invoices,
	}))
}

func (hg *HandlerGroup) handleSaveJobOrders(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	req := &SaveJobOrdersRequest{}
	if err := respond.Bind(r, req); err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	saved, err := hg.jobOrders.SaveAll(r.Context(), id, req.edits)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	orders, err := hg.jobOrders.List(r.Context(), id)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	respond.Fragment(w, r, jobOrders(id, orders), fmt.Sprintf("Saved %d job orders.", len(saved)))
}

type jobOrderForm struct {
	ID       string `form:"id"`
	Rate     string `form:"rate"`
	Currency string `form:"currency"`
	Unit     string `form:"unit"`
}

type SaveJobOrdersRequest struct {
	Edits []jobOrderForm `form:"edits"`

	edits []domain.JobOrderEdit
}

// SaveJobOrdersRequest satisfies [render.Binder]
func (req *SaveJobOrdersRequest) Bind(r *http.Request) error {
	req.edits = make([]domain.JobOrderEdit, 0, len(req.Edits))
	for _, f := range req.Edits {
		id, err := strconv.ParseInt(strings.TrimSpace(f.ID), 10, 64)
		if err != nil {
			return ierr.NewErrorf("invalid job order id %q", f.ID).
				WithHint("The job order form is out of date. Reload the page and try again.").
				Mark(ierr.ErrValidation)
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(f.Rate))
		if err != nil {
			return ierr.NewErrorf("invalid rate %q for job order %d", f.Rate, id).
				WithHintf("%q is not a valid rate.", f.Rate).
				Mark(ierr.ErrValidation)
		}

		unit, err := domain.ParseUnit(f.Unit)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Choose a daily, weekly or monthly unit.").
				Mark(ierr.ErrValidation)
		}

		req.edits = append(req.edits, domain.JobOrderEdit{
			ID:       id,
			Rate:     rate,
			Currency: f.Currency,
			Unit:     unit,
		})
	}
	return nil
}
