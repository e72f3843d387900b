// Package event names the window events the server raises in the browser
// through the HX-Trigger response header.
package event

import (
	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
)

// Event is a window event name. Names are kebab-case so Alpine.js x-on
// attributes can bind them.
type Event string

func (e Event) String() string { return string(e) }

// Listen binds handler to the event on window, for use on the page body.
// The handler sees the trigger detail as $event.detail.value.
func (e Event) Listen(handler string) templ.Attributes {
	return templ.Attributes{"x-on:" + e.String() + ".window": handler}
}

const (
	// SetErrMessage replaces the page error banner. An empty detail clears it.
	SetErrMessage Event = "set-err-message"
	// SetNotice shows a transient success message.
	SetNotice Event = "set-notice"
	// SessionExpired sends the browser to the sign in page.
	SessionExpired Event = "session-expired"
)

func TriggerSetErrMessage(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetErrMessage.String(), message)
}

func TriggerSetNotice(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetNotice.String(), message)
}

var TriggerSessionExpired = htmx.Trigger(SessionExpired.String())
