// Package columns retrieves table column metadata from the API, falling
// back to compiled-in defaults when the call fails. Tables render with the
// server's layout when it is available and a sane static layout otherwise.
package columns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ledgerline/ledgerline/query"
)

// Align is the horizontal alignment of a column's cells.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Column describes one table column.
type Column struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Align  Align  `json:"align,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// InvoiceDefaults is the static layout for the invoices table, used when
// the metadata endpoint is unreachable.
func InvoiceDefaults() []Column {
	return []Column{
		{ID: "number", Title: "Invoice", Width: 12},
		{ID: "customer", Title: "Customer", Width: 0},
		{ID: "status", Title: "Status", Width: 9},
		{ID: "amount", Title: "Amount", Width: 12, Align: AlignRight},
		{ID: "issued_at", Title: "Issued", Width: 12},
		{ID: "due_at", Title: "Due", Width: 12},
	}
}

// Provider fetches column metadata with caching and fallback.
type Provider struct {
	base      *url.URL
	http      *http.Client
	cache     *query.Cache
	ttl       time.Duration
	fallbacks map[string][]Column
}

// NewProvider creates a provider for the metadata endpoint at baseURL.
func NewProvider(baseURL string, cache *query.Cache, ttl time.Duration) (*Provider, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if cache == nil {
		cache = query.NewCache()
	}
	return &Provider{
		base:  base,
		http:  &http.Client{Timeout: 10 * time.Second},
		cache: cache,
		ttl:   ttl,
		fallbacks: map[string][]Column{
			"invoices": InvoiceDefaults(),
		},
	}, nil
}

// SetHTTPClient replaces the underlying HTTP client, mainly for tests.
func (p *Provider) SetHTTPClient(hc *http.Client) {
	if p == nil || hc == nil {
		return
	}
	p.http = hc
}

// SetFallback registers static columns for a table.
func (p *Provider) SetFallback(table string, cols []Column) {
	if p == nil {
		return
	}
	p.fallbacks[table] = cols
}

// Columns returns the column layout for a table. Remote metadata wins; on
// any error the registered fallback is returned instead, and the failure is
// logged rather than surfaced, since a static layout is always usable.
func (p *Provider) Columns(ctx context.Context, table string) []Column {
	if p == nil {
		return nil
	}
	key := query.K("columns", table)
	cols, err := query.FetchAs(ctx, p.cache, key, p.ttl, func(ctx context.Context) ([]Column, error) {
		return p.fetch(ctx, table)
	})
	if err != nil {
		slog.Warn("column metadata unavailable, using defaults", "table", table, "error", err)
		return p.fallbacks[table]
	}
	if len(cols) == 0 {
		return p.fallbacks[table]
	}
	return cols
}

func (p *Provider) fetch(ctx context.Context, table string) ([]Column, error) {
	ref, err := url.Parse("/tables/" + url.PathEscape(table) + "/columns")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch columns: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch columns: status %d", resp.StatusCode)
	}
	var cols []Column
	if err := json.NewDecoder(resp.Body).Decode(&cols); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	return cols, nil
}
