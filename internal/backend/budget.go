package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/models"
)

const tableBudgets = "budgets"

// BudgetFilter narrows budget lists.
type BudgetFilter struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Period     models.BudgetPeriod
}

func (f BudgetFilter) values() url.Values {
	query := url.Values{}
	if f.UserID != uuid.Nil {
		query.Set("user_id", "eq."+f.UserID.String())
	}

	if f.CategoryID != uuid.Nil {
		query.Set("category_id", "eq."+f.CategoryID.String())
	}

	if f.Period != "" {
		query.Set("period", "eq."+string(f.Period))
	}

	return query
}

// CacheKey returns the canonical serialization of the filter.
func (f BudgetFilter) CacheKey() string {
	return f.values().Encode()
}

// ListBudgets returns all matching budgets, newest start date first.
func (c *Client) ListBudgets(ctx context.Context, filter BudgetFilter) ([]models.Budget, error) {
	query := filter.values()
	query.Set("order", "start_date.desc")

	return list[models.Budget](ctx, c, tableBudgets, query)
}

// GetBudget returns the budget with the given ID.
func (c *Client) GetBudget(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	return getOne[models.Budget](ctx, c, tableBudgets, id)
}

// CreateBudget creates a budget.
func (c *Client) CreateBudget(ctx context.Context, input models.BudgetCreate) (models.Budget, error) {
	return create[models.Budget](ctx, c, tableBudgets, []models.BudgetCreate{input})
}

// UpdateBudget applies a partial update to a budget.
func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, patch models.BudgetUpdate) (models.Budget, error) {
	return update[models.Budget](ctx, c, tableBudgets, id, patch)
}

// DeleteBudget deletes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, c, tableBudgets, id)
}
