package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/models"
)

// Accounts returns the matching accounts, newest first.
func (q *Queries) Accounts(ctx context.Context, filter backend.AccountFilter) ([]models.Account, error) {
	key := listKey("accounts", filter.CacheKey())
	return cache.Fetch(ctx, q.store, key, func(ctx context.Context) ([]models.Account, error) {
		return q.backend.ListAccounts(ctx, filter)
	})
}

// Account returns a single account by ID.
func (q *Queries) Account(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return cache.Fetch(ctx, q.store, detailKey("accounts", id), func(ctx context.Context) (models.Account, error) {
		return q.backend.GetAccount(ctx, id)
	})
}

// CreateAccount creates an account and invalidates cached account queries.
func (q *Queries) CreateAccount(ctx context.Context, input models.AccountCreate) (models.Account, error) {
	account, err := q.backend.CreateAccount(ctx, input)
	if err != nil {
		return models.Account{}, err
	}

	q.store.Invalidate("accounts/*")
	return account, nil
}

// UpdateAccount applies a partial update. The updated row replaces the
// detail entry; list entries are invalidated.
func (q *Queries) UpdateAccount(ctx context.Context, id uuid.UUID, patch models.AccountUpdate) (models.Account, error) {
	account, err := q.backend.UpdateAccount(ctx, id, patch)
	if err != nil {
		return models.Account{}, err
	}

	q.store.Invalidate("accounts/list*")
	cache.Put(q.store, detailKey("accounts", id), account)
	return account, nil
}

// DeleteAccount deletes an account and drops it from the cache.
func (q *Queries) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := q.backend.DeleteAccount(ctx, id); err != nil {
		return err
	}

	q.store.Invalidate("accounts/*")
	return nil
}
