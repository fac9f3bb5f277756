// Package remote speaks to the hosted table store: a PostgREST-style API
// with per-table insert/select/update/delete plus equality and membership
// filters, and the companion auth and object-storage endpoints.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skillbridge/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNoRows is returned by Single when the filter matched nothing.
var ErrNoRows = errors.New("remote: no rows matched")

// Client is a thin REST client for the hosted table store.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a Client from configuration. The service key is sent both
// as the apikey header and as a bearer token, which is what the hosted store
// expects for server-side callers.
func NewClient(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("apikey", cfg.Key).
		SetAuthToken(cfg.Key)

	return &Client{http: http, logger: logger}
}

// Table starts a query against a named table.
func (c *Client) Table(name string) *TableQuery {
	return &TableQuery{
		client: c,
		table:  name,
		params: url.Values{},
	}
}

// TableQuery accumulates filters for one table call.
type TableQuery struct {
	client *Client
	table  string
	params url.Values
}

// Select restricts the returned columns (defaults to *).
func (q *TableQuery) Select(columns string) *TableQuery {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter.
func (q *TableQuery) Eq(column string, value interface{}) *TableQuery {
	q.params.Add(column, "eq."+formatValue(value))
	return q
}

// In adds a membership filter.
func (q *TableQuery) In(column string, values []int64) *TableQuery {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	q.params.Add(column, "in.("+strings.Join(parts, ",")+")")
	return q
}

// Order sorts the result by a column.
func (q *TableQuery) Order(column string, descending bool) *TableQuery {
	dir := "asc"
	if descending {
		dir = "desc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of returned rows.
func (q *TableQuery) Limit(n int) *TableQuery {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

func (q *TableQuery) path() string {
	return "/rest/v1/" + q.table
}

// Get executes a select into dest (a pointer to a slice).
func (q *TableQuery) Get(ctx context.Context, dest interface{}) error {
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.params).
		SetResult(dest).
		Get(q.path())
	if err != nil {
		return fmt.Errorf("remote select %s: %w", q.table, err)
	}
	if resp.IsError() {
		return q.client.apiError("select", q.table, resp)
	}
	return nil
}

// Single executes a select expecting exactly one row; ErrNoRows when none.
// With more than one match the first row under the query's ordering is taken.
func (q *TableQuery) Single(ctx context.Context, dest interface{}) error {
	raw := json.RawMessage{}
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.params).
		SetResult(&raw).
		Get(q.path())
	if err != nil {
		return fmt.Errorf("remote select %s: %w", q.table, err)
	}
	if resp.IsError() {
		return q.client.apiError("select", q.table, resp)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("remote select %s: decoding rows: %w", q.table, err)
	}
	if len(rows) == 0 {
		return ErrNoRows
	}
	return json.Unmarshal(rows[0], dest)
}

// Insert posts a row and decodes the stored representation (with generated
// id) back into dest when dest is non-nil.
func (q *TableQuery) Insert(ctx context.Context, row interface{}, dest interface{}) error {
	raw := json.RawMessage{}
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(row).
		SetResult(&raw).
		Post(q.path())
	if err != nil {
		return fmt.Errorf("remote insert %s: %w", q.table, err)
	}
	if resp.IsError() {
		return q.client.apiError("insert", q.table, resp)
	}
	if dest == nil {
		return nil
	}
	return decodeFirst(raw, q.table, dest)
}

// Update patches the filtered rows and decodes the first updated row into
// dest when dest is non-nil.
func (q *TableQuery) Update(ctx context.Context, patch interface{}, dest interface{}) error {
	raw := json.RawMessage{}
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(q.params).
		SetBody(patch).
		SetResult(&raw).
		Patch(q.path())
	if err != nil {
		return fmt.Errorf("remote update %s: %w", q.table, err)
	}
	if resp.IsError() {
		return q.client.apiError("update", q.table, resp)
	}
	if dest == nil {
		return nil
	}
	return decodeFirst(raw, q.table, dest)
}

// Delete removes the filtered rows and reports how many went away.
func (q *TableQuery) Delete(ctx context.Context) (int, error) {
	raw := json.RawMessage{}
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(q.params).
		SetResult(&raw).
		Delete(q.path())
	if err != nil {
		return 0, fmt.Errorf("remote delete %s: %w", q.table, err)
	}
	if resp.IsError() {
		return 0, q.client.apiError("delete", q.table, resp)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("remote delete %s: decoding rows: %w", q.table, err)
	}
	return len(rows), nil
}

func (c *Client) apiError(verb, table string, resp *resty.Response) error {
	c.logger.Warn("remote store call failed",
		zap.String("verb", verb),
		zap.String("table", table),
		zap.Int("status", resp.StatusCode()),
		zap.ByteString("body", resp.Body()),
	)
	return fmt.Errorf("remote %s %s: status %d", verb, table, resp.StatusCode())
}

func decodeFirst(raw json.RawMessage, table string, dest interface{}) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		// Some deployments return a bare object rather than a one-row array.
		return json.Unmarshal(raw, dest)
	}
	if len(rows) == 0 {
		return fmt.Errorf("remote %s: empty representation", table)
	}
	return json.Unmarshal(rows[0], dest)
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
