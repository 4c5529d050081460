// Package cache implements the in-memory query cache for Smart Wallet.
//
// The cache is a stale-while-revalidate store: a fresh value is served
// without a network request, a stale value is served immediately while a
// background refetch runs, and concurrent fetches for the same key share a
// single in-flight request.
//
// The store is a disposable projection of backend state. Losing it is
// harmless, every value can be refetched.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/sync/singleflight"

	"github.com/smart-wallet/core/internal/models"
)

// State is the lifecycle state of a cached query.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// retries is the fixed bound for read retries on transient failures.
const retries = 2

type entry struct {
	value      any
	err        error
	state      State
	fetchedAt  time.Time
	refreshing bool
}

// Store is the query cache. All methods are safe for concurrent use;
// values themselves are treated as immutable once stored.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	group   singleflight.Group
	log     zerolog.Logger
}

// New creates a Store. Values older than ttl are served stale and
// revalidated in the background.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		log:     log.With().Str("component", "cache").Logger(),
	}
}

// Fetch returns the value for key, loading it with fn when necessary.
//
//   - no entry: fn runs synchronously; concurrent callers share one call
//   - fresh entry: served immediately, fn does not run
//   - stale entry: served immediately, fn runs once in the background
//
// Transient failures are retried up to a small fixed bound. Authorization
// and validation failures are never retried.
func Fetch[T any](ctx context.Context, s *Store, key string, fn func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && e.state == StateSuccess {
		value := e.value.(T)
		stale := time.Since(e.fetchedAt) > s.ttl

		// A stale value is still served, but at most one background
		// refetch runs per key. The consumer never observes the
		// loading state here.
		if stale && !e.refreshing {
			e.refreshing = true
			go s.refresh(key, erase(fn))
		}

		s.mu.Unlock()
		return value, nil
	}

	if !ok {
		e = &entry{state: StateIdle}
		s.entries[key] = e
	}
	e.state = StateLoading
	s.mu.Unlock()

	value, err, _ := s.group.Do(key, func() (any, error) {
		return s.load(ctx, erase(fn))
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// The entry may have been invalidated while loading; only record the
	// result if the key still refers to the same entry.
	current, ok := s.entries[key]
	if err != nil {
		if ok && current == e {
			e.state = StateError
			e.err = err
		}

		var zero T
		return zero, err
	}

	if ok && current == e {
		e.state = StateSuccess
		e.err = nil
		e.value = value
		e.fetchedAt = time.Now()
	}

	return value.(T), nil
}

// refresh revalidates a stale entry in the background. The consumer that
// triggered it already got the stale value, so a failure only logs: the
// entry keeps serving the old value and stays in the success state.
func (s *Store) refresh(key string, fn func(context.Context) (any, error)) {
	value, err := s.load(context.Background(), fn)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		// Invalidated while refreshing. The result is discarded,
		// writing to a key nobody reads is not worth it.
		return
	}

	e.refreshing = false
	if err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("background refetch failed")
		return
	}

	e.value = value
	e.fetchedAt = time.Now()
	e.state = StateSuccess
	e.err = nil
}

// load runs fn with the retry policy for reads.
func (s *Store) load(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	var value any
	var err error

	for attempt := 0; attempt <= retries; attempt++ {
		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}

		if !retryable(err) {
			return nil, err
		}
	}

	return nil, err
}

// retryable reports whether a failure is transient. Authorization denials
// are never retried; neither are validation failures or definite absences.
func retryable(err error) bool {
	return errors.Is(err, models.ErrNetwork) || errors.Is(err, models.ErrBackend)
}

// Invalidate drops every entry whose key matches the glob pattern, forcing
// the next fetch to hit the backend. It returns the number of dropped
// entries.
func (s *Store) Invalidate(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key := range s.entries {
		if glob.Glob(pattern, key) {
			delete(s.entries, key)
			dropped++
		}
	}

	return dropped
}

// Drop removes a single entry.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Put stores a value for key, marking it fresh. Used by mutations that
// already hold the authoritative row, e.g. to patch a detail entry after an
// update.
func Put[T any](s *Store, key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry{
		value:     value,
		state:     StateSuccess,
		fetchedAt: time.Now(),
	}
}

// Patch applies fn to the cached value for key, when present and
// successful. It returns whether a value was patched.
func Patch[T any](s *Store, key string, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.state != StateSuccess {
		return false
	}

	value, ok := e.value.(T)
	if !ok {
		return false
	}

	e.value = fn(value)
	return true
}

// StateOf returns the state of the entry for key, StateIdle when absent.
func (s *Store) StateOf(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return StateIdle
	}

	return e.state
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// erase wraps a typed loader into an untyped one for singleflight.
func erase[T any](fn func(context.Context) (T, error)) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}
