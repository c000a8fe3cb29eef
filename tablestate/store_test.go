package tablestate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleState() State {
	return State{
		ColumnVisibility: map[string]bool{"notes": false},
		ColumnOrder:      []string{"number", "customer", "amount"},
		Sort:             []SortRule{{ColumnID: "due_at", Desc: true}},
		Filters:          map[string]string{"status": "overdue"},
		GlobalFilter:     "acme",
		Page:             2,
		PageSize:         25,
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	scope := Scope{Table: "invoices", User: "u1"}

	_, ok, err := store.Load(scope)
	require.NoError(t, err)
	require.False(t, ok)

	want := sampleState()
	require.NoError(t, store.Save(scope, want))

	got, ok, err := store.Load(scope)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	// Scopes are independent: same table, different user.
	other := Scope{Table: "invoices", User: "u2"}
	_, ok, err = store.Load(other)
	require.NoError(t, err)
	require.False(t, ok)

	// Overwrite, then clear.
	want.Page = 7
	require.NoError(t, store.Save(scope, want))
	got, ok, err = store.Load(scope)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 7, got.Page)

	require.NoError(t, store.Clear(scope))
	_, ok, err = store.Load(scope)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, store.Clear(scope), "clearing a missing scope is a no-op")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestSQLStore(t *testing.T) {
	t.Parallel()
	store, err := OpenSQLStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	testStore(t, store)
}

func TestStateNormalize(t *testing.T) {
	t.Parallel()

	s := State{Page: -3}.Normalize()
	require.Equal(t, 0, s.Page)
	require.Equal(t, DefaultPageSize, s.PageSize)
}

func TestStateVisibleDefaults(t *testing.T) {
	t.Parallel()

	var s State
	require.True(t, s.Visible("anything"))

	s.ColumnVisibility = map[string]bool{"notes": false}
	require.False(t, s.Visible("notes"))
	require.True(t, s.Visible("number"))
}
