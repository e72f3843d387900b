package validator

import (
	"testing"

	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/stretchr/testify/assert"
)

type signUp struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(signUp{Email: "grip@example.com", Password: "hunter22"}))

	err := ValidateRequest(signUp{Email: "not-an-email"})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
