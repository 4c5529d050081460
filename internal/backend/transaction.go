package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
)

const tableTransactions = "transactions"

// TransactionFilter narrows transaction lists. Zero values mean "not set".
type TransactionFilter struct {
	UserID     uuid.UUID
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Type       models.TransactionType
	Status     models.TransactionStatus
	FromDate   types.Date
	UntilDate  types.Date
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
}

func (f TransactionFilter) values() url.Values {
	query := url.Values{}
	if f.UserID != uuid.Nil {
		query.Set("user_id", "eq."+f.UserID.String())
	}

	if f.AccountID != uuid.Nil {
		query.Set("account_id", "eq."+f.AccountID.String())
	}

	if f.CategoryID != uuid.Nil {
		query.Set("category_id", "eq."+f.CategoryID.String())
	}

	if f.Type != "" {
		query.Set("type", "eq."+string(f.Type))
	}

	if f.Status != "" {
		query.Set("status", "eq."+string(f.Status))
	}

	if !f.FromDate.IsZero() {
		query.Add("date", "gte."+f.FromDate.String())
	}

	if !f.UntilDate.IsZero() {
		query.Add("date", "lte."+f.UntilDate.String())
	}

	if !f.MinAmount.IsZero() {
		query.Add("amount", "gte."+f.MinAmount.String())
	}

	if !f.MaxAmount.IsZero() {
		query.Add("amount", "lte."+f.MaxAmount.String())
	}

	return query
}

// CacheKey returns the canonical serialization of the filter. url.Values
// encodes in sorted key order, so two equal filters always serialize to the
// same string.
func (f TransactionFilter) CacheKey() string {
	return f.values().Encode()
}

// ListTransactions returns all matching transactions, most recent first.
func (c *Client) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := filter.values()
	query.Set("order", "date.desc,time.desc")

	return list[models.Transaction](ctx, c, tableTransactions, query)
}

// GetTransaction returns the transaction with the given ID.
func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	return getOne[models.Transaction](ctx, c, tableTransactions, id)
}

// CreateTransaction creates a transaction.
func (c *Client) CreateTransaction(ctx context.Context, input models.TransactionCreate) (models.Transaction, error) {
	return create[models.Transaction](ctx, c, tableTransactions, []models.TransactionCreate{input})
}

// UpdateTransaction applies a partial update to a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, patch models.TransactionUpdate) (models.Transaction, error) {
	return update[models.Transaction](ctx, c, tableTransactions, id, patch)
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, c, tableTransactions, id)
}
