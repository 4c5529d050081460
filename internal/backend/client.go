// Package backend implements the typed data client for the hosted backend.
//
// The backend exposes a PostgREST-style record API. This package translates
// typed entity operations into requests against it and folds every failure
// into the error taxonomy defined in the models package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-wallet/core/internal/config"
	"github.com/smart-wallet/core/internal/models"
)

// Client is the typed data client. It is constructed from an explicit
// configuration and holds no other global state.
type Client struct {
	base       *url.URL
	anonKey    string
	serviceKey string
	http       *http.Client
	log        zerolog.Logger
}

// New creates a Client from the configuration. It fails when the backend
// URL or the anonymous key are missing.
func New(cfg config.Config) (*Client, error) {
	if cfg.BackendURL == nil {
		return nil, config.ErrBackendURLMissing
	}

	if cfg.AnonKey == "" {
		return nil, config.ErrAnonKeyMissing
	}

	return &Client{
		base:       cfg.BackendURL,
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		http:       &http.Client{Timeout: cfg.RequestTimeout},
		log:        log.With().Str("component", "backend").Logger(),
	}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() *url.URL {
	return c.base
}

// AnonKey returns the anonymous API key.
func (c *Client) AnonKey() string {
	return c.anonKey
}

// ServiceRoleKey returns the service role key. Empty unless configured.
func (c *Client) ServiceRoleKey() string {
	return c.serviceKey
}

// key returns the API key to authenticate with.
func (c *Client) key(privileged bool) string {
	if privileged && c.serviceKey != "" {
		return c.serviceKey
	}

	return c.anonKey
}

// Ping verifies the backend is reachable. Any response counts, even a
// rejection: reachability is about the network path, not the credentials.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/rest/v1/", nil, nil, nil)
	if errors.Is(err, models.ErrNetwork) {
		return err
	}

	return nil
}

// do performs a single request against the backend. A non-nil out is filled
// from the response body. The returned error always wraps one of the
// sentinels from the models package.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	return c.doAs(ctx, method, path, query, body, out, false)
}

func (c *Client) doAs(ctx context.Context, method, path string, query url.Values, body any, out any, privileged bool) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	key := c.key(privileged)
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Writes return the written rows so that callers get the
	// backend-assigned fields without a second request.
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodDelete {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: un-parseable response body: %v", models.ErrBackend, err)
	}

	return nil
}

// statusError maps a non-2xx response to the error taxonomy. The backend's
// error message, when present, is folded into the wrapped error.
func (c *Client) statusError(resp *http.Response) error {
	msg := errorMessage(resp.Body)

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		sentinel = models.ErrAuth
	case resp.StatusCode == http.StatusNotFound:
		sentinel = models.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusConflict ||
		resp.StatusCode == http.StatusUnprocessableEntity:
		sentinel = models.ErrValidation
	default:
		c.log.Error().Int("status", resp.StatusCode).Str("message", msg).Msg("backend request failed")
		sentinel = models.ErrBackend
	}

	if msg == "" {
		return fmt.Errorf("%w (HTTP %d)", sentinel, resp.StatusCode)
	}

	return fmt.Errorf("%w: %s", sentinel, msg)
}

// errorMessage extracts the error message from a backend error body. Both
// {"error": ...} and {"message": ...} shapes occur.
func errorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}

	if body.Error != "" {
		return body.Error
	}

	return body.Message
}

var pluralIes = regexp.MustCompile("ies$")

// notFound returns the error for a query on a table that matched no rows.
// The table name doubles as information about the type of resource.
func notFound(table string) error {
	name := strings.ReplaceAll(table, "_", " ")
	name = pluralIes.ReplaceAllString(name, "y")
	name = strings.TrimRight(name, "s")

	return fmt.Errorf("%w %s matching your query", models.ErrNotFound, name)
}
