package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/models"
)

// Budgets returns the matching budgets, newest start date first.
func (q *Queries) Budgets(ctx context.Context, filter backend.BudgetFilter) ([]models.Budget, error) {
	key := listKey("budgets", filter.CacheKey())
	return cache.Fetch(ctx, q.store, key, func(ctx context.Context) ([]models.Budget, error) {
		return q.backend.ListBudgets(ctx, filter)
	})
}

// Budget returns a single budget by ID.
func (q *Queries) Budget(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	return cache.Fetch(ctx, q.store, detailKey("budgets", id), func(ctx context.Context) (models.Budget, error) {
		return q.backend.GetBudget(ctx, id)
	})
}

// CreateBudget creates a budget and invalidates cached budget queries.
func (q *Queries) CreateBudget(ctx context.Context, input models.BudgetCreate) (models.Budget, error) {
	budget, err := q.backend.CreateBudget(ctx, input)
	if err != nil {
		return models.Budget{}, err
	}

	q.store.Invalidate("budgets/*")
	return budget, nil
}

// UpdateBudget applies a partial update to a budget.
func (q *Queries) UpdateBudget(ctx context.Context, id uuid.UUID, patch models.BudgetUpdate) (models.Budget, error) {
	budget, err := q.backend.UpdateBudget(ctx, id, patch)
	if err != nil {
		return models.Budget{}, err
	}

	q.store.Invalidate("budgets/list*")
	cache.Put(q.store, detailKey("budgets", id), budget)
	return budget, nil
}

// DeleteBudget deletes a budget and drops it from the cache.
func (q *Queries) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if err := q.backend.DeleteBudget(ctx, id); err != nil {
		return err
	}

	q.store.Invalidate("budgets/*")
	return nil
}
