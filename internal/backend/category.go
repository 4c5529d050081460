package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/models"
)

const tableCategories = "categories"

// CategoryFilter narrows category lists.
type CategoryFilter struct {
	UserID uuid.UUID
	Type   models.TransactionType
}

func (f CategoryFilter) values() url.Values {
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
func (f CategoryFilter) CacheKey() string {
	return f.values().Encode()
}

// ListCategories returns all matching categories in name order.
func (c *Client) ListCategories(ctx context.Context, filter CategoryFilter) ([]models.Category, error) {
	query := filter.values()
	query.Set("order", "name.asc")

	return list[models.Category](ctx, c, tableCategories, query)
}

// GetCategory returns the category with the given ID.
func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	return getOne[models.Category](ctx, c, tableCategories, id)
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input models.CategoryCreate) (models.Category, error) {
	return create[models.Category](ctx, c, tableCategories, []models.CategoryCreate{input})
}

// UpdateCategory applies a partial update to a category.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, patch models.CategoryUpdate) (models.Category, error) {
	return update[models.Category](ctx, c, tableCategories, id, patch)
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, c, tableCategories, id)
}

// CreateDefaultCategories seeds the twelve default categories for a newly
// registered user in one batch insert. There is no transaction boundary with
// profile creation: a failure here surfaces to the caller but does not roll
// the profile back.
func (c *Client) CreateDefaultCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	return createAll[models.Category](ctx, c, tableCategories, models.DefaultCategories(userID))
}
