package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/models"
)

const tableProfiles = "user_profiles"

// GetProfile returns the profile with the given user ID.
func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
	return getOne[models.UserProfile](ctx, c, tableProfiles, id)
}

// GetProfileByEmail returns the profile registered for an email address.
// A missing profile is not an error: the result is nil and callers treat it
// as "this user has not registered yet".
func (c *Client) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := url.Values{}
	query.Set("email", "eq."+email)

	rows, err := list[models.UserProfile](ctx, c, tableProfiles, query)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// CreateProfile creates a user profile. The default currency falls back to
// models.DefaultCurrency when unset.
func (c *Client) CreateProfile(ctx context.Context, input models.UserProfileCreate) (models.UserProfile, error) {
	if input.DefaultCurrency == "" {
		input.DefaultCurrency = models.DefaultCurrency
	}

	return create[models.UserProfile](ctx, c, tableProfiles, []models.UserProfileCreate{input})
}

// Session returns the session the backend's auth service reports for the
// configured key. An invalid or expired token fails with models.ErrAuth.
func (c *Client) Session(ctx context.Context) (models.Session, error) {
	var session struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}

	err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, &session)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{UserID: session.ID, Email: session.Email}, nil
}

// SignOut invalidates the current session on the backend.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil)
}
