package studio

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the status classes callers branch on. Match with
// [errors.Is] against any error returned from the client.
var (
	ErrUnauthorized = errors.New("studio: unauthorized")
	ErrForbidden    = errors.New("studio: forbidden")
	ErrNotFound     = errors.New("studio: not found")
	ErrValidation   = errors.New("studio: invalid payload")
)

// APIError is a non-2xx response from the backend, normalized by the
// gateway. Message is the server-provided message when one was present.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("studio: api error: status=%d message=%q", e.Status, e.Message)
	}
	return fmt.Sprintf("studio: api error: status=%d", e.Status)
}

// Is maps status codes onto the package sentinels so call sites can use
// errors.Is without inspecting status codes themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}
