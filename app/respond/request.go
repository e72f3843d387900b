package respond

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

// Bind decodes the request body into v. Decode failures become validation
// errors; errors already marked by v.Bind are kept as they are.
func Bind(r *http.Request, v render.Binder) error {
	err := render.Bind(r, v)
	if err == nil {
		return nil
	}
	if ierr.IsValidation(err) || ierr.IsNotFound(err) {
		return err
	}
	return ierr.WithError(err).
		WithHint("The submitted data could not be read.").
		Mark(ierr.ErrValidation)
}

// IDParam reads a numeric URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierr.NewErrorf("invalid %s %q", name, raw).
			WithHintf("%q is not a valid ID.", raw).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}

// DateValue parses an optional date field. Empty input gives the zero date.
func DateValue(field, raw string) (domain.Date, error) {
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, ierr.WithError(err).
			WithHintf("%s must be a date like 2024-01-31.", field).
			Mark(ierr.ErrValidation)
	}
	return d, nil
}
