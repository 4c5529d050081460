package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/models"
)

const tableAccounts = "accounts"

// AccountFilter narrows account lists.
type AccountFilter struct {
	UserID uuid.UUID
	Type   models.AccountType
}

func (f AccountFilter) values() url.Values {
	query := url.Values{}
	if f.UserID != uuid.Nil {
		query.Set("user_id", "eq."+f.UserID.String())
	}

	if f.Type != "" {
		query.Set("type", "eq."+string(f.Type))
	}

	return query
}

// CacheKey returns the canonical serialization of the filter.
func (f AccountFilter) CacheKey() string {
	return f.values().Encode()
}

// ListAccounts returns all matching accounts, newest first.
func (c *Client) ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error) {
	query := filter.values()
	query.Set("order", "created_at.desc")

	return list[models.Account](ctx, c, tableAccounts, query)
}

// GetAccount returns the account with the given ID.
func (c *Client) GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return getOne[models.Account](ctx, c, tableAccounts, id)
}

// CreateAccount creates an account. The backend assigns ID and timestamps.
func (c *Client) CreateAccount(ctx context.Context, input models.AccountCreate) (models.Account, error) {
	return create[models.Account](ctx, c, tableAccounts, []models.AccountCreate{input})
}

// UpdateAccount applies a partial update to an account.
func (c *Client) UpdateAccount(ctx context.Context, id uuid.UUID, patch models.AccountUpdate) (models.Account, error) {
	return update[models.Account](ctx, c, tableAccounts, id, patch)
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, c, tableAccounts, id)
}
