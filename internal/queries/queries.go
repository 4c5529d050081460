// Package queries binds the typed backend client to the query cache.
//
// Reads go through cache.Fetch under a stable key derived from the entity
// and filter. Mutations write through to the backend and then invalidate
// every cached query the change could affect, so the next read refetches.
// Transaction mutations additionally invalidate accounts and budgets: the
// backend denormalizes balances and budget spend from transactions.
package queries

import (
	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
)

// Queries serves cached reads and cache-invalidating writes for every
// Smart Wallet entity.
type Queries struct {
	backend *backend.Client
	store   *cache.Store
}

// New creates a Queries layer over the given client and store.
func New(c *backend.Client, s *cache.Store) *Queries {
	return &Queries{backend: c, store: s}
}

// Store exposes the underlying cache, e.g. for the realtime relay to
// invalidate on change notifications.
func (q *Queries) Store() *cache.Store {
	return q.store
}

func listKey(entity, filterKey string) string {
	return entity + "/list?" + filterKey
}

func detailKey(entity string, id uuid.UUID) string {
	return entity + "/detail/" + id.String()
}
