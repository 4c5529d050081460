// Package realtime subscribes to the hosted backend's change feed and
// relays row changes to interested consumers.
//
// The backend pushes one event per committed row change over a server-sent
// event stream. Connections drop; a subscription reconnects with capped
// exponential backoff and keeps reconnecting until it is closed. Events
// lost while disconnected are not replayed, consumers treat the feed as a
// cache-invalidation hint, never as a source of truth.
package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/models"
)

// ChangeType is the kind of row change.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// Change is one row change on a table.
type Change struct {
	Table string
	Type  ChangeType
	RowID uuid.UUID
}

// event is the wire representation of a change.
type event struct {
	Type   ChangeType `json:"type"`
	Table  string     `json:"table"`
	Record struct {
		ID uuid.UUID `json:"id"`
	} `json:"record"`
	OldRecord struct {
		ID uuid.UUID `json:"id"`
	} `json:"old_record"`
}

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Client opens change feed subscriptions against the backend.
type Client struct {
	base    *url.URL
	anonKey string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a realtime client sharing the backend's address and
// credentials. The HTTP client carries no timeout, streams stay open
// indefinitely and are torn down through the subscription context.
func NewClient(b *backend.Client) *Client {
	return &Client{
		base:    b.BaseURL(),
		anonKey: b.AnonKey(),
		http:    &http.Client{},
		log:     log.With().Str("component", "realtime").Logger(),
	}
}

// Subscription is a live change feed for one table. Close is idempotent
// and safe on a nil subscription, which Subscribe returns on failure.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close tears the subscription down and waits for its reader to exit.
func (s *Subscription) Close() {
	if s == nil {
		return
	}

	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Subscribe opens a change feed for one table, scoped to a user, and calls
// onChange for every event. The first connection is established
// synchronously so that an unreachable feed surfaces immediately; later
// drops reconnect in the background.
func (c *Client) Subscribe(ctx context.Context, table string, userID uuid.UUID, onChange func(Change)) (*Subscription, error) {
	if table == "" {
		return nil, fmt.Errorf("realtime: table is required: %w", models.ErrValidation)
	}

	ctx, cancel := context.WithCancel(ctx)

	body, err := c.connect(ctx, table, userID)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	go c.run(ctx, body, table, userID, onChange, sub.done)

	return sub, nil
}

// run consumes the stream and reconnects until the context is canceled.
func (c *Client) run(ctx context.Context, body *bufio.Scanner, table string, userID uuid.UUID, onChange func(Change), done chan<- struct{}) {
	defer close(done)

	backoff := initialBackoff
	for {
		if body != nil {
			c.consume(body, table, onChange)
			body = nil
		}

		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		next, err := c.connect(ctx, table, userID)
		if err != nil {
			c.log.Warn().Str("table", table).Err(err).Dur("backoff", backoff).Msg("reconnect failed")

			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		body = next
	}
}

// connect opens one stream and returns a scanner over its lines. The
// response body is closed when the subscription context ends.
func (c *Client) connect(ctx context.Context, table string, userID uuid.UUID) (*bufio.Scanner, error) {
	target := c.base.JoinPath("/realtime/v1/changes")

	query := url.Values{}
	query.Set("table", table)
	if userID != uuid.Nil {
		query.Set("user_id", userID.String())
	}
	target.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}

	request.Header.Set("apikey", c.anonKey)
	request.Header.Set("Authorization", "Bearer "+c.anonKey)
	request.Header.Set("Accept", "text/event-stream")

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("change feed rejected: %w", models.ErrAuth)
		}

		return nil, fmt.Errorf("change feed unavailable (%s): %w", response.Status, models.ErrBackend)
	}

	context.AfterFunc(ctx, func() { response.Body.Close() })

	return bufio.NewScanner(response.Body), nil
}

// consume reads SSE frames off one connection until it drops.
func (c *Client) consume(scanner *bufio.Scanner, table string, onChange func(Change)) {
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		// A blank line terminates the frame.
		if line == "" {
			if data.Len() > 0 {
				c.dispatch(data.String(), table, onChange)
				data.Reset()
			}
			continue
		}

		if payload, ok := strings.CutPrefix(line, "data:"); ok {
			data.WriteString(strings.TrimPrefix(payload, " "))
		}
	}
}

// dispatch decodes one frame and hands it to the consumer. Malformed
// frames are logged and skipped, one bad event must not kill the feed.
func (c *Client) dispatch(payload, table string, onChange func(Change)) {
	var e event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		c.log.Warn().Str("table", table).Err(err).Msg("malformed change event")
		return
	}

	if e.Table == "" {
		e.Table = table
	}

	rowID := e.Record.ID
	if rowID == uuid.Nil {
		rowID = e.OldRecord.ID
	}

	onChange(Change{Table: e.Table, Type: e.Type, RowID: rowID})
}
