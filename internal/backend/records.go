package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// recordPath returns the record API path for a table.
func recordPath(table string) string {
	return "/rest/v1/" + table
}

// list fetches all rows of a table matching the query.
func list[T any](ctx context.Context, c *Client, table string, query url.Values) ([]T, error) {
	var rows []T
	err := c.do(ctx, http.MethodGet, recordPath(table), query, nil, &rows)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []T{}
	}

	return rows, nil
}

// getOne fetches the single row of a table with the given ID. A query that
// matches no rows fails with models.ErrNotFound.
func getOne[T any](ctx context.Context, c *Client, table string, id uuid.UUID) (T, error) {
	var zero T

	query := url.Values{}
	query.Set("id", "eq."+id.String())

	rows, err := list[T](ctx, c, table, query)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, notFound(table)
	}

	return rows[0], nil
}

// create inserts rows into a table. The backend assigns identity and
// timestamps and returns the written representation.
func create[T any](ctx context.Context, c *Client, table string, input any) (T, error) {
	var zero T

	var rows []T
	err := c.do(ctx, http.MethodPost, recordPath(table), nil, input, &rows)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, notFound(table)
	}

	return rows[0], nil
}

// createAll inserts rows into a table in one request and returns the
// written representations.
func createAll[T any](ctx context.Context, c *Client, table string, input any) ([]T, error) {
	var rows []T
	err := c.do(ctx, http.MethodPost, recordPath(table), nil, input, &rows)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []T{}
	}

	return rows, nil
}

// update applies a partial update to the row with the given ID. Updating an
// absent row fails with models.ErrNotFound.
func update[T any](ctx context.Context, c *Client, table string, id uuid.UUID, patch any) (T, error) {
	var zero T

	query := url.Values{}
	query.Set("id", "eq."+id.String())

	var rows []T
	err := c.do(ctx, http.MethodPatch, recordPath(table), query, patch, &rows)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, notFound(table)
	}

	return rows[0], nil
}

// remove deletes the row with the given ID. Deletion is not idempotent for
// the caller: deleting an absent row fails with models.ErrNotFound.
func remove(ctx context.Context, c *Client, table string, id uuid.UUID) error {
	query := url.Values{}
	query.Set("id", "eq."+id.String())

	var rows []struct {
		ID uuid.UUID `json:"id"`
	}
	err := c.do(ctx, http.MethodDelete, recordPath(table), query, nil, &rows)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return notFound(table)
	}

	return nil
}
