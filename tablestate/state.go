// Package tablestate persists per-table UI preferences: column visibility
// and order, sort rules, filters, and pagination. State is scoped by a
// table identifier and an optional user identifier, so two users of the
// same table keep independent layouts.
package tablestate

// SortRule orders a table by one column.
type SortRule struct {
	ColumnID string `json:"column_id"`
	Desc     bool   `json:"desc"`
}

// State is the persisted UI state for one table.
type State struct {
	ColumnVisibility map[string]bool   `json:"column_visibility,omitempty"`
	ColumnOrder      []string          `json:"column_order,omitempty"`
	Sort             []SortRule        `json:"sort,omitempty"`
	Filters          map[string]string `json:"filters,omitempty"`
	GlobalFilter     string            `json:"global_filter,omitempty"`
	Page             int               `json:"page"`
	PageSize         int               `json:"page_size"`
}

// DefaultPageSize is used when a stored state has no page size.
const DefaultPageSize = 50

// Normalize fills zero values with defaults and drops out-of-range fields.
func (s State) Normalize() State {
	if s.Page < 0 {
		s.Page = 0
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	return s
}

// Visible reports whether a column is visible. Columns default to visible
// when no preference is stored.
func (s State) Visible(columnID string) bool {
	if s.ColumnVisibility == nil {
		return true
	}
	visible, ok := s.ColumnVisibility[columnID]
	if !ok {
		return true
	}
	return visible
}

// Scope identifies whose state for which table is being stored.
type Scope struct {
	Table string
	User  string
}

// Store persists table state by scope.
type Store interface {
	Load(scope Scope) (State, bool, error)
	Save(scope Scope, state State) error
	Clear(scope Scope) error
}
