package realtime_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/config"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/realtime"
)

func newClient(t *testing.T, handler http.Handler) *realtime.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	assert.Nil(t, err)

	b, err := backend.New(config.Config{
		BackendURL:     base,
		AnonKey:        "test-anon-key",
		RequestTimeout: 5 * time.Second,
	})
	assert.Nil(t, err)

	return realtime.NewClient(b)
}

// stream serves one SSE connection: it emits the given frames, then holds
// the connection open until the client disconnects.
func stream(frames ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for _, frame := range frames {
			fmt.Fprintf(w, "data: %s\n\n", frame)
			flusher.Flush()
		}

		<-r.Context().Done()
	})
}

func TestSubscribeReceivesChanges(t *testing.T) {
	rowID := uuid.New()
	client := newClient(t, stream(
		fmt.Sprintf(`{"type":"INSERT","table":"transactions","record":{"id":%q}}`, rowID),
	))

	changes := make(chan realtime.Change, 1)
	sub, err := client.Subscribe(context.Background(), "transactions", uuid.New(), func(c realtime.Change) {
		changes <- c
	})
	assert.Nil(t, err)
	defer sub.Close()

	select {
	case change := <-changes:
		assert.Equal(t, "transactions", change.Table)
		assert.Equal(t, realtime.ChangeInsert, change.Type)
		assert.Equal(t, rowID, change.RowID)
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}

func TestSubscribeDeleteUsesOldRecord(t *testing.T) {
	rowID := uuid.New()
	client := newClient(t, stream(
		fmt.Sprintf(`{"type":"DELETE","table":"budgets","old_record":{"id":%q}}`, rowID),
	))

	changes := make(chan realtime.Change, 1)
	sub, err := client.Subscribe(context.Background(), "budgets", uuid.Nil, func(c realtime.Change) {
		changes <- c
	})
	assert.Nil(t, err)
	defer sub.Close()

	select {
	case change := <-changes:
		assert.Equal(t, realtime.ChangeDelete, change.Type)
		assert.Equal(t, rowID, change.RowID)
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}

func TestSubscribeSkipsMalformedFrames(t *testing.T) {
	rowID := uuid.New()
	client := newClient(t, stream(
		`{not json`,
		fmt.Sprintf(`{"type":"UPDATE","table":"accounts","record":{"id":%q}}`, rowID),
	))

	changes := make(chan realtime.Change, 2)
	sub, err := client.Subscribe(context.Background(), "accounts", uuid.Nil, func(c realtime.Change) {
		changes <- c
	})
	assert.Nil(t, err)
	defer sub.Close()

	select {
	case change := <-changes:
		assert.Equal(t, rowID, change.RowID, "the bad frame must be skipped, not the stream")
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}

func TestSubscribeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
	}{
		{"unauthorized", http.StatusUnauthorized, models.ErrAuth},
		{"forbidden", http.StatusForbidden, models.ErrAuth},
		{"unavailable", http.StatusServiceUnavailable, models.ErrBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			sub, err := client.Subscribe(context.Background(), "accounts", uuid.Nil, func(realtime.Change) {})
			assert.ErrorIs(t, err, tt.err)

			// A failed subscribe returns nothing to close, but closing
			// it anyway must not panic.
			sub.Close()
		})
	}
}

func TestSubscribeRequiresTable(t *testing.T) {
	client := newClient(t, stream())

	sub, err := client.Subscribe(context.Background(), "", uuid.Nil, func(realtime.Change) {})
	assert.ErrorIs(t, err, models.ErrValidation)
	sub.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	client := newClient(t, stream())

	sub, err := client.Subscribe(context.Background(), "accounts", uuid.Nil, func(realtime.Change) {})
	assert.Nil(t, err)

	sub.Close()
	sub.Close()
}

func TestSubscribeReconnects(t *testing.T) {
	rowID := uuid.New()
	connections := 0

	// The first connection drops immediately; the second serves a change.
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connections++
		if connections == 1 {
			w.WriteHeader(http.StatusOK)
			return
		}

		stream(fmt.Sprintf(`{"type":"INSERT","table":"accounts","record":{"id":%q}}`, rowID)).ServeHTTP(w, r)
	}))

	changes := make(chan realtime.Change, 1)
	sub, err := client.Subscribe(context.Background(), "accounts", uuid.Nil, func(c realtime.Change) {
		changes <- c
	})
	assert.Nil(t, err)
	defer sub.Close()

	select {
	case change := <-changes:
		assert.Equal(t, rowID, change.RowID)
	case <-time.After(5 * time.Second):
		t.Fatal("never reconnected")
	}
}

func TestRelayInvalidatesOnChange(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("table") == "transactions" {
			stream(`{"type":"INSERT","table":"transactions","record":{"id":"`+uuid.NewString()+`"}}`).ServeHTTP(w, r)
			return
		}

		stream().ServeHTTP(w, r)
	}))

	store := cache.New(time.Minute)
	cache.Put(store, "transactions/list?", 1)
	cache.Put(store, "accounts/list?", 1)
	cache.Put(store, "budgets/list?", 1)
	cache.Put(store, "categories/list?", 1)

	relay := realtime.NewRelay(client, store)
	err := relay.Watch(context.Background(), uuid.New())
	assert.Nil(t, err)
	defer relay.Close()

	// A transaction change must also drop accounts and budgets, whose
	// balances and spend derive from transactions.
	assert.Eventually(t, func() bool {
		return store.StateOf("transactions/list?") == cache.StateIdle &&
			store.StateOf("accounts/list?") == cache.StateIdle &&
			store.StateOf("budgets/list?") == cache.StateIdle
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, cache.StateSuccess, store.StateOf("categories/list?"))
}
