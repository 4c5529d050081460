package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/models"
)

// Categories returns the matching categories in name order.
func (q *Queries) Categories(ctx context.Context, filter backend.CategoryFilter) ([]models.Category, error) {
	key := listKey("categories", filter.CacheKey())
	return cache.Fetch(ctx, q.store, key, func(ctx context.Context) ([]models.Category, error) {
		return q.backend.ListCategories(ctx, filter)
	})
}

// Category returns a single category by ID.
func (q *Queries) Category(ctx context.Context, id uuid.UUID) (models.Category, error) {
	return cache.Fetch(ctx, q.store, detailKey("categories", id), func(ctx context.Context) (models.Category, error) {
		return q.backend.GetCategory(ctx, id)
	})
}

// CreateCategory creates a category and invalidates cached category queries.
func (q *Queries) CreateCategory(ctx context.Context, input models.CategoryCreate) (models.Category, error) {
	category, err := q.backend.CreateCategory(ctx, input)
	if err != nil {
		return models.Category{}, err
	}

	q.store.Invalidate("categories/*")
	return category, nil
}

// UpdateCategory applies a partial update to a category.
func (q *Queries) UpdateCategory(ctx context.Context, id uuid.UUID, patch models.CategoryUpdate) (models.Category, error) {
	category, err := q.backend.UpdateCategory(ctx, id, patch)
	if err != nil {
		return models.Category{}, err
	}

	q.store.Invalidate("categories/list*")
	cache.Put(q.store, detailKey("categories", id), category)
	return category, nil
}

// DeleteCategory deletes a category. Transactions referencing it keep a
// dangling category_id, so cached transaction queries are invalidated too.
func (q *Queries) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := q.backend.DeleteCategory(ctx, id); err != nil {
		return err
	}

	q.store.Invalidate("categories/*")
	q.store.Invalidate("transactions/*")
	return nil
}

// SeedDefaultCategories creates the stock category set for a new user and
// invalidates cached category queries.
func (q *Queries) SeedDefaultCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	categories, err := q.backend.CreateDefaultCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	q.store.Invalidate("categories/*")
	return categories, nil
}
