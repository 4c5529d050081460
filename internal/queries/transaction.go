package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/models"
)

// Transactions returns the matching transactions, newest first.
func (q *Queries) Transactions(ctx context.Context, filter backend.TransactionFilter) ([]models.Transaction, error) {
	key := listKey("transactions", filter.CacheKey())
	return cache.Fetch(ctx, q.store, key, func(ctx context.Context) ([]models.Transaction, error) {
		return q.backend.ListTransactions(ctx, filter)
	})
}

// Transaction returns a single transaction by ID.
func (q *Queries) Transaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	return cache.Fetch(ctx, q.store, detailKey("transactions", id), func(ctx context.Context) (models.Transaction, error) {
		return q.backend.GetTransaction(ctx, id)
	})
}

// CreateTransaction creates a transaction. The write moves an account
// balance and possibly budget spend, so all three entity caches are
// invalidated.
func (q *Queries) CreateTransaction(ctx context.Context, input models.TransactionCreate) (models.Transaction, error) {
	transaction, err := q.backend.CreateTransaction(ctx, input)
	if err != nil {
		return models.Transaction{}, err
	}

	q.invalidateTransactionDependents()
	return transaction, nil
}

// UpdateTransaction applies a partial update to a transaction.
func (q *Queries) UpdateTransaction(ctx context.Context, id uuid.UUID, patch models.TransactionUpdate) (models.Transaction, error) {
	transaction, err := q.backend.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return models.Transaction{}, err
	}

	q.invalidateTransactionDependents()
	cache.Put(q.store, detailKey("transactions", id), transaction)
	return transaction, nil
}

// DeleteTransaction deletes a transaction.
func (q *Queries) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := q.backend.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	q.invalidateTransactionDependents()
	return nil
}

func (q *Queries) invalidateTransactionDependents() {
	q.store.Invalidate("transactions/*")
	q.store.Invalidate("accounts/*")
	q.store.Invalidate("budgets/*")
}
