package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/cache"
)

// watchedTables are the tables whose changes affect cached queries.
var watchedTables = []string{"accounts", "transactions", "categories", "budgets"}

// Relay forwards backend change notifications into the query cache so that
// rows changed outside this process stop being served stale.
type Relay struct {
	client *Client
	store  *cache.Store
	subs   []*Subscription
}

// NewRelay creates a relay over the given realtime client and cache.
func NewRelay(client *Client, store *cache.Store) *Relay {
	return &Relay{client: client, store: store}
}

// Watch subscribes to every watched table for one user. On failure the
// already established subscriptions are closed and the error returned.
func (r *Relay) Watch(ctx context.Context, userID uuid.UUID) error {
	for _, table := range watchedTables {
		sub, err := r.client.Subscribe(ctx, table, userID, r.apply)
		if err != nil {
			r.Close()
			return err
		}

		r.subs = append(r.subs, sub)
	}

	return nil
}

// Close tears down every subscription.
func (r *Relay) Close() {
	for _, sub := range r.subs {
		sub.Close()
	}
	r.subs = nil
}

// apply invalidates the cached queries a change could affect. Transaction
// changes also invalidate accounts and budgets, whose balances and spend
// are denormalized from transactions.
func (r *Relay) apply(change Change) {
	r.store.Invalidate(change.Table + "/*")

	if change.Table == "transactions" {
		r.store.Invalidate("accounts/*")
		r.store.Invalidate("budgets/*")
	}
}
