package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the application-level profile of a user. Identity and
// credentials live in the backend's auth service, the profile only carries
// display data.
type UserProfile struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	DefaultCurrency Currency  `json:"default_currency"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserProfileCreate is the set of fields writable when creating a profile.
type UserProfileCreate struct {
	Email           string   `json:"email"`
	Name            string   `json:"name,omitempty"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	DefaultCurrency Currency `json:"default_currency,omitempty"`
}

// Session is the authenticated identity the backend's auth service reports
// for the current token. The core consumes sessions, it never creates them.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}
