// Package errors defines the error sentinels shared across crewdesk and a
// small builder around cockroachdb/errors for attaching user-facing hints.
package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound     = newSentinel(ErrCodeNotFound, "resource not found")
	ErrValidation   = newSentinel(ErrCodeValidation, "validation error")
	ErrDatabase     = newSentinel(ErrCodeDatabase, "database error")
	ErrHTTPClient   = newSentinel(ErrCodeHTTPClient, "http client error")
	ErrUnauthorized = newSentinel(ErrCodeUnauthorized, "unauthorized")
	ErrSystem       = newSentinel(ErrCodeSystem, "system error")

	// statusCodes is checked in order, so an error marked with several
	// sentinels gets the status of the first one listed.
	statusCodes = []struct {
		sentinel *InternalError
		status   int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrHTTPClient, http.StatusBadGateway},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeNotFound     = "not_found"
	ErrCodeValidation   = "validation_error"
	ErrCodeDatabase     = "database_error"
	ErrCodeHTTPClient   = "http_client_error"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeSystem       = "system_error"
)

// InternalError is a sentinel that errors get marked with.
type InternalError struct {
	Code    string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSentinel(code, message string) *InternalError {
	return &InternalError{Code: code, Message: message}
}

func Is(err, reference error) bool { return errors.Is(err, reference) }

func As(err error, target any) bool { return errors.As(err, target) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsDatabase(err error) bool { return errors.Is(err, ErrDatabase) }

// HTTPStatusFromErr returns the status code of the first entry in
// statusCodes that err is marked with, or 500.
func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.sentinel) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// DisplayMessage returns the hints attached to err, which are safe to show
// to a user. Errors without hints fall back to the sentinel message.
func DisplayMessage(err error) string {
	if hints := errors.FlattenHints(err); hints != "" {
		return hints
	}
	for _, sc := range statusCodes {
		if errors.Is(err, sc.sentinel) {
			return sc.sentinel.Message
		}
	}
	return "something went wrong"
}
