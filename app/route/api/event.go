package api

import (
	"io"
	"net/http"

	"github.com/go-chi/render"

	"github.com/angelofallars/crewdesk/app/respond"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/service"
)

const maxUploadBytes = 25 << 20

func (hg *HandlerGroup) handleListEvents(w http.ResponseWriter, r *http.Request) {
	from, err := respond.DateValue("from", r.URL.Query().Get("from"))
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	to, err := respond.DateValue("to", r.URL.Query().Get("to"))
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	events, err := hg.services.Events.List(r.Context(), from, to)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, events)
}

func (hg *HandlerGroup) handleActiveEvents(w http.ResponseWriter, r *http.Request) {
	events, err := hg.services.Events.Active(r.Context())
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, events)
}

type createEventRequest struct {
	service.CreateEventRequest
}

// createEventRequest satisfies [render.Binder]
func (req *createEventRequest) Bind(r *http.Request) error { return nil }

func (hg *HandlerGroup) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	req := &createEventRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return
	}
	event, err := hg.services.Events.Create(r.Context(), req.CreateEventRequest)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	created(w, r, event)
}

type updateEventRequest struct {
	service.UpdateEventRequest
}

// updateEventRequest satisfies [render.Binder]
func (req *updateEventRequest) Bind(r *http.Request) error { return nil }

func (hg *HandlerGroup) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	req := &updateEventRequest{}
	if err := respond.Bind(r, req); err != nil {
		hg.fail(w, r, err)
		return
	}
	event, err := hg.services.Events.Update(r.Context(), id, req.UpdateEventRequest)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	render.JSON(w, r, event)
}

func (hg *HandlerGroup) handleUploadEventFile(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		hg.fail(w, r, ierr.WithError(err).
			WithHint("Attach the file as multipart field \"file\" (25 MB max).").
			Mark(ierr.ErrValidation))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		hg.fail(w, r, ierr.WithError(err).
			WithHint("The uploaded file could not be read.").
			Mark(ierr.ErrValidation))
		return
	}

	uploaded, err := hg.services.Events.UploadFile(r.Context(), id, header.Filename, data)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	created(w, r, uploaded)
}
