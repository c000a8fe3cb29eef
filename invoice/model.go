// Package invoice provides the invoice domain model, the HTTP API client,
// and a cached service layer that keeps list, detail, and stats queries
// consistent across mutations.
package invoice

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusVoid    Status = "void"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusVoid:
		return true
	}
	return false
}

// Invoice is a single invoice record. Amounts are in minor currency units.
type Invoice struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Customer    string    `json:"customer"`
	Status      Status    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
	DueAt       time.Time `json:"due_at"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewID returns a fresh invoice identifier.
func NewID() string {
	return ulid.Make().String()
}

// Stats aggregates invoice totals by status.
type Stats struct {
	Count            int   `json:"count"`
	OutstandingCents int64 `json:"outstanding_cents"`
	PaidCents        int64 `json:"paid_cents"`
	OverdueCents     int64 `json:"overdue_cents"`
}

// ListParams selects, orders, and pages a list query. The zero value lists
// the first page with server defaults.
type ListParams struct {
	Status   Status
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// String folds the parameters into a stable form used in cache keys.
func (p ListParams) String() string {
	return fmt.Sprintf("status=%s&q=%s&sort=%s&desc=%t&page=%d&size=%d",
		p.Status, p.Search, p.SortBy, p.SortDesc, p.Page, p.PageSize)
}

// Page is one page of a list query.
type Page struct {
	Items   []Invoice `json:"items"`
	Total   int       `json:"total"`
	HasMore bool      `json:"has_more"`
}
