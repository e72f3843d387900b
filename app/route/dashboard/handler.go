package dashboard

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
	r.Get("/", hg.handleDashboard)
}

func (hg *HandlerGroup) handleDashboard(w http.ResponseWriter, r *http.Request) {
	active, err := hg.events.Active(r.Context())
	if err != nil {
		respond.Error(w, r, hg.log, err)
		return
	}
	respond.Page(w, r, "Dashboard", activeEvents(active))
}

func activeEvents(events []*domain.ActiveEvent) templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Elem("h2", "Happening today")
		if len(events) == 0 {
			p.Elem("p", "No events are running today.", templ.Attributes{"class": "empty"})
			return
		}
		for _, e := range events {
			p.Open("article", templ.Attributes{"class": "active-event", "id": fmt.Sprintf("event-%d", e.ID)})
			p.Elem("h3", e.Title)
			p.Elem("p", fmt.Sprintf("%s · %s to %s", e.CurrentDay,
				e.StartDate.Format(invoice.DisplayDateLayout),
				e.EndDate.Format(invoice.DisplayDateLayout)))
			p.Open("div", templ.Attributes{"class": "crew"})
			if len(e.Crew) == 0 {
				p.Elem("span", "No crew assigned", templ.Attributes{"class": "empty"})
			}
			for _, m := range e.Crew {
				p.Open("a", templ.Attributes{"href": fmt.Sprintf("/crew/%d", m.ID), "title": m.FullName})
				p.Render(component.Avatar(m.Avatar(), m.FullName))
				p.Close("a")
			}
			p.Close("div")
			p.Close("article")
		}
	})
}
