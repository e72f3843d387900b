package crew

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/angelofallars/crewdesk/app/component"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/invoice"
	"github.com/angelofallars/crewdesk/internal/service"
)

func roster(members []*domain.CrewSummary) templ.Component {
	return component.Build(func(p *component.Printer) {
		if len(members) == 0 {
			p.Elem("p", "No crew members yet.", templ.Attributes{"class": "empty"})
			return
		}
		p.Open("table", templ.Attributes{"class": "table", "id": "roster"})
		p.Raw("<thead><tr><th>Name</th><th>Role</th><th>Status</th><th>Type</th><th>Projects</th><th>Team</th></tr></thead>")
		p.Open("tbody")
		for _, m := range members {
			p.Open("tr")
			p.Open("td")
			p.Render(component.Avatar(m.Avatar(), m.FullName))
			p.Elem("a", m.FullName, templ.Attributes{"href": fmt.Sprintf("/crew/%d", m.ID)})
			p.Close("td")
			p.Elem("td", m.Role)
			p.Elem("td", m.Status)
			p.Elem("td", m.Type)
			p.Elem("td", strings.Join(m.ProjectNames, ", "))
			p.Open("td")
			for _, img := range m.TeamImages {
				p.Render(component.Avatar(img, "teammate"))
			}
			p.Close("td")
			p.Close("tr")
		}
		p.Close("tbody")
		p.Close("table")
	})
}

type profileProps struct {
	Member    *domain.CrewMember
	JobOrders []*service.CrewJobOrder
	Invoices  []*domain.Invoice
}

func profile(props profileProps) templ.Component {
	return component.Build(func(p *component.Printer) {
		m := props.Member
		p.Open("section", templ.Attributes{"class": "profile"})
		p.Render(component.Avatar(m.Avatar(), m.FullName))
		p.Elem("h2", m.FullName)
		p.Elem("p", fmt.Sprintf("%s · %s · %s", m.Role, m.Status, m.Type))
		p.Close("section")

		p.Elem("h2", "Job orders")
		p.Render(jobOrders(m.ID, props.JobOrders))

		p.Elem("h2", "Generate invoice")
		p.Render(invoiceForm(m.ID))

		p.Elem("h2", "Past invoices")
		p.Render(pastInvoices(props.Invoices))
	})
}

// jobOrders is the save-all form. Each row submits edits.N.* fields.
func jobOrders(crewID int64, orders []*service.CrewJobOrder) templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Open("form", templ.Attributes{
			"id":        "job-orders",
			"hx-post":   fmt.Sprintf("/crew/%d/job-orders", crewID),
			"hx-target": "this",
			"hx-swap":   "outerHTML",
		})
		if len(orders) == 0 {
			p.Elem("p", "No job orders for this crew member.", templ.Attributes{"class": "empty"})
			p.Close("form")
			return
		}

		p.Open("table", templ.Attributes{"class": "table"})
		p.Raw("<thead><tr><th>Event</th><th>Dates</th><th>Rate</th><th>Currency</th><th>Unit</th></tr></thead>")
		p.Open("tbody")
		for i, o := range orders {
			field := func(name string) string { return fmt.Sprintf("edits.%d.%s", i, name) }

			p.Open("tr")
			if o.Event != nil {
				p.Elem("td", o.Event.Title)
				p.Elem("td", fmt.Sprintf("%s to %s",
					o.Event.StartDate.Format(invoice.DisplayDateLayout),
					o.Event.EndDate.Format(invoice.DisplayDateLayout)))
			} else {
				p.Elem("td", "Unknown event")
				p.Elem("td", "")
			}

			p.Open("td")
			p.Open("input", templ.Attributes{"type": "hidden", "name": field("id"), "value": o.ID})
			p.Open("input", templ.Attributes{
				"type": "number", "name": field("rate"), "value": o.Rate.String(),
				"min": "0", "step": "0.01", "required": true,
			})
			p.Close("td")

			p.Open("td")
			p.Open("input", templ.Attributes{
				"type": "text", "name": field("currency"), "value": o.Currency,
				"maxlength": "3", "placeholder": "AED",
			})
			p.Close("td")

			p.Open("td")
			p.Open("select", templ.Attributes{"name": field("unit")})
			for _, u := range domain.Units {
				p.Elem("option", u.Label(), templ.Attributes{"value": u.String(), "selected": u == o.Unit})
			}
			p.Close("select")
			p.Close("td")
			p.Close("tr")
		}
		p.Close("tbody")
		p.Close("table")
		p.Elem("button", "Save all", templ.Attributes{"type": "submit"})
		p.Close("form")
	})
}

// invoiceForm posts without htmx so the browser downloads the PDF.
func invoiceForm(crewID int64) templ.Component {
	return component.Build(func(p *component.Printer) {
		p.Open("form", templ.Attributes{
			"class":  "inline",
			"method": "post",
			"action": fmt.Sprintf("/crew/%d/invoices", crewID),
			"target": "_blank",
		})
		p.Raw(`<label>Start date <input type="date" name="start-date" required></label>`)
		p.Raw(`<label>End date <input type="date" name="end-date" required></label>`)
		p.Elem("button", "Generate PDF", templ.Attributes{"type": "submit"})
		p.Close("form")
	})
}

func pastInvoices(invoices []*domain.Invoice) templ.Component {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", inv.ID),
			fmt.Sprintf("%s to %s",
				inv.StartDate.Format(invoice.DisplayDateLayout),
				inv.EndDate.Format(invoice.DisplayDateLayout)),
			fmt.Sprintf("%d", len(inv.Breakdown)),
			fmt.Sprintf("%s %s", invoice.FormatAmount(inv.Total), inv.Currency),
		})
	}
	return component.Table([]string{"Invoice", "Period", "Lines", "Total"}, rows, "No invoices generated yet.")
}
