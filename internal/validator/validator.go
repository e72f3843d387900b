package validator

import (
	"sync"

	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateRequest validates a request DTO against its `validate` tags and
// marks failures with ierr.ErrValidation.
func ValidateRequest(req any) error {
	if err := get().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fieldErr := range validateErrs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		return ierr.WithError(err).
			WithHint("Some of the submitted fields are invalid.").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
