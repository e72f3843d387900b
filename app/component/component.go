// Package component holds the page chrome and the widgets shared by every
// screen.
package component

import (
	"github.com/a-h/templ"

	"github.com/angelofallars/crewdesk/app/event"
)

type NavLink struct {
	Label string
	Href  string
}

var Nav = []NavLink{
	{Label: "Dashboard", Href: "/"},
	{Label: "Crew", Href: "/crew"},
	{Label: "Events", Href: "/events"},
}

// FullPage wraps body in the document shell: htmx, Alpine.js, navigation
// and the global message banners.
func FullPage(title string, body templ.Component) templ.Component {
	return Build(func(p *Printer) {
		p.Raw("<!DOCTYPE html>")
		p.Open("html", templ.Attributes{"lang": "en"})
		p.Open("head")
		p.Raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.Elem("title", title+" · crewdesk")
		p.Raw(`<link rel="stylesheet" href="/static/css/style.css">`)
		p.Raw(`<script src="https://unpkg.com/htmx.org@1.9.10"></script>`)
		p.Raw(`<script defer src="https://unpkg.com/alpinejs@3.13.3/dist/cdn.min.js"></script>`)
		p.Close("head")

		p.Open("body",
			templ.Attributes{"x-data": "{ errMessage: '', notice: '' }"},
			event.SetErrMessage.Listen("errMessage = $event.detail.value"),
			event.SetNotice.Listen("notice = $event.detail.value; setTimeout(() => notice = '', 4000)"),
			event.SessionExpired.Listen("window.location = '/signin'"),
		)
		p.Open("nav", templ.Attributes{"class": "nav"})
		p.Elem("strong", "crewdesk")
		for _, link := range Nav {
			p.Elem("a", link.Label, templ.Attributes{"href": link.Href})
		}
		p.Close("nav")

		p.Open("main", templ.Attributes{"class": "container"})
		p.Elem("h1", title)
		p.Raw(`<p class="error" role="alert" x-show="errMessage" x-text="errMessage"></p>`)
		p.Raw(`<p class="notice" role="status" x-show="notice" x-text="notice"></p>`)
		p.Render(body)
		p.Close("main")
		p.Close("body")
		p.Close("html")
	})
}

// Table renders a plain table. An empty rows slice shows emptyText.
func Table(headers []string, rows [][]string, emptyText string) templ.Component {
	return Build(func(p *Printer) {
		if len(rows) == 0 {
			p.Elem("p", emptyText, templ.Attributes{"class": "empty"})
			return
		}
		p.Open("table", templ.Attributes{"class": "table"})
		p.Open("thead")
		p.Open("tr")
		for _, h := range headers {
			p.Elem("th", h)
		}
		p.Close("tr")
		p.Close("thead")
		p.Open("tbody")
		for _, row := range rows {
			p.Open("tr")
			for _, cell := range row {
				p.Elem("td", cell)
			}
			p.Close("tr")
		}
		p.Close("tbody")
		p.Close("table")
	})
}

// Avatar renders a round profile picture.
func Avatar(src, alt string) templ.Component {
	return Build(func(p *Printer) {
		p.Open("img", templ.Attributes{"class": "avatar", "src": src, "alt": alt, "width": 32, "height": 32})
	})
}

// Message renders a plain message page body.
func Message(text string) templ.Component {
	return Build(func(p *Printer) {
		p.Elem("p", text)
	})
}
