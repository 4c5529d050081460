// Package uuid wraps github.com/google/uuid with the helpers the gateway
// needs for binding resource IDs from URIs.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned when a string is not a parseable UUID.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID, returning ErrInvalid when it is not one.
func Parse(s string) (UUID, error) {
	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, ErrInvalid
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler so that UUIDs can
// be bound directly from URI and query parameters. An empty parameter binds
// to Nil, which callers treat as "not set".
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return ErrInvalid
	}

	*u = UUID{parsed}
	return nil
}
