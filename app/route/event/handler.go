package event

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/crewdesk/app/component"
	"github.com/angelofallars/crewdesk/app/respond"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/invoice"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/service"
)

type HandlerGroup struct {
	log    *logger.Logger
	events service.EventService
}

func NewHandlerGroup(log *logger.Logger, services *service.Services) *HandlerGroup {
	return &HandlerGroup{log: log, events: services.Events}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/events", hg.handleList)
}

// handleList shows events overlapping the optional from/to query range.
func (hg *HandlerGroup) handleList(w http.ResponseWriter, r *http.Request) {
	from, err := respond.DateValue("From", r.URL.Query().Get("from"))
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}
	to, err := respond.DateValue("To", r.URL.Query().Get("to"))
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	events, err := hg.events.List(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}

	respond.Page(w, r, "Events", eventsPage(from, to, events))
}

func eventsPage(from, to domain.Date, events []*domain.Event) templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Open("form", templ.Attributes{
			"class":       "inline",
			"hx-get":      "/events",
			"hx-target":   "#events",
			"hx-select":   "#events",
			"hx-swap":     "outerHTML",
			"hx-push-url": "true",
		})
		p.Open("label")
		p.Text("From ")
		p.Open("input", templ.Attributes{"type": "date", "name": "from", "value": from.String()})
		p.Close("label")
		p.Open("label")
		p.Text("To ")
		p.Open("input", templ.Attributes{"type": "date", "name": "to", "value": to.String()})
		p.Close("label")
		p.Elem("button", "Filter", templ.Attributes{"type": "submit"})
		p.Close("form")

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				e.Title,
				e.JobID,
				e.Level,
				e.StartDate.Format(invoice.DisplayDateLayout),
				e.EndDate.Format(invoice.DisplayDateLayout),
				fmt.Sprintf("%d", e.Days()),
			})
		}
		p.Open("div", templ.Attributes{"id": "events"})
		p.Render(component.Table([]string{"Title", "Job ID", "Level", "Start", "End", "Days"}, rows, "No events in this range."))
		p.Close("div")
	})
}
