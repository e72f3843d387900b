// Package respond writes errors and notices the way each kind of client
// expects them: htmx triggers, plain pages or JSON.
package respond

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/render"

	"github.com/angelofallars/crewdesk/app/component"
	"github.com/angelofallars/crewdesk/app/event"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/logger"
)

// ErrResponse is the JSON error body.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"error"`
}

// ErrResponse satisfies [render.Renderer]
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func logError(log *logger.Logger, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		return
	}
	log.Debugw("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
}

// JSONError writes err as a JSON error body.
func JSONError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	status := ierr.HTTPStatusFromErr(err)
	logError(log, r, status, err)
	_ = render.Render(w, r, &ErrResponse{HTTPStatusCode: status, Message: ierr.DisplayMessage(err)})
}

// Error reports err to an HTML client. htmx requests get the message through
// the set-err-message trigger and swap nothing; full page loads get an
// error page.
func Error(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	status := ierr.HTTPStatusFromErr(err)
	logError(log, r, status, err)
	message := ierr.DisplayMessage(err)

	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().
			StatusCode(status).
			Reswap(htmx.SwapNone).
			AddTrigger(event.TriggerSetErrMessage(message)).
			Write(w)
		return
	}

	w.WriteHeader(status)
	_ = component.FullPage(http.StatusText(status), component.Message(message)).Render(r.Context(), w)
}

// Page renders a full page, or only its body for htmx requests.
func Page(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	if htmx.IsHTMX(r) {
		_ = htmx.NewResponse().
			AddTrigger(event.TriggerSetErrMessage("")).
			RenderTempl(r.Context(), w, body)
		return
	}
	_ = component.FullPage(title, body).Render(r.Context(), w)
}

// Fragment swaps body in and clears any shown error, optionally with a
// notice.
func Fragment(w http.ResponseWriter, r *http.Request, body templ.Component, notice string) {
	resp := htmx.NewResponse().AddTrigger(event.TriggerSetErrMessage(""))
	if notice != "" {
		resp = resp.AddTrigger(event.TriggerSetNotice(notice))
	}
	_ = resp.RenderTempl(r.Context(), w, body)
}
