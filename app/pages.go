package app

import (
	"errors"

	studio "github.com/portfoliostudio/studio.go"
)

// submitMessage turns a fetcher error into the user-visible message a form
// shows. Server-provided messages win; anything else gets the fallback so
// transport details never leak into the UI.
func submitMessage(err error, fallback string) string {
	var apiErr *studio.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

const (
	msgInvalidCredentials = "Invalid credentials"
	msgRequiredFields     = "Please fill in all required fields"
	msgSubmitFailed       = "Something went wrong. Please try again."
)
