package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the server reports a missing invoice.
var ErrNotFound = errors.New("invoice not found")

// APIError carries a non-2xx response from the invoice API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invoice api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("invoice api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the invoice HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SetHTTPClient replaces the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if c == nil || hc == nil {
		return
	}
	c.http = hc
}

// List fetches one page of invoices.
func (c *Client) List(ctx context.Context, params ListParams) (Page, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.Search != "" {
		q.Set("q", params.Search)
	}
	if params.SortBy != "" {
		q.Set("sort", params.SortBy)
		q.Set("desc", strconv.FormatBool(params.SortDesc))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("size", strconv.Itoa(params.PageSize))
	}
	var page Page
	if err := c.do(ctx, http.MethodGet, "/invoices?"+q.Encode(), nil, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Get fetches a single invoice by id.
func (c *Client) Get(ctx context.Context, id string) (Invoice, error) {
	var inv Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// Stats fetches aggregate invoice totals.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/invoices/stats", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Create stores a new invoice and returns the server's copy.
func (c *Client) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	var created Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", inv, &created); err != nil {
		return Invoice{}, err
	}
	return created, nil
}

// Update replaces an invoice and returns the server's copy.
func (c *Client) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	var updated Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(inv.ID), inv, &updated); err != nil {
		return Invoice{}, err
	}
	return updated, nil
}

// Delete removes an invoice by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil || c.base == nil {
		return errors.New("invoice client not configured")
	}
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}
	endpoint := c.base.ResolveReference(ref).String()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	slog.Debug("invoice api request", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
