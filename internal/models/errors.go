package models

import (
	"errors"
)

// The error taxonomy for all backend operations. Errors returned from the
// data client wrap exactly one of these sentinels so that callers can
// discriminate with errors.Is.
var (
	// ErrValidation is returned when the backend rejects malformed or
	// incomplete input, e.g. a missing required field.
	ErrValidation = errors.New("the submitted data is invalid")

	// ErrNotFound is returned when a referenced resource does not exist.
	ErrNotFound = errors.New("there is no")

	// ErrAuth is returned when the session is missing, expired or rejected.
	// Operations failing with ErrAuth are never retried.
	ErrAuth = errors.New("the session is not valid")

	// ErrBackend is returned for any other non-2xx backend response.
	ErrBackend = errors.New("an error occurred on the backend during your request")

	// ErrNetwork is returned when the request never reached the backend.
	ErrNetwork = errors.New("the backend could not be reached")
)
