package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyComposition(t *testing.T) {
	t.Parallel()

	a := K("invoices", "list", 1)
	b := K("invoices", "list", 1)
	require.Equal(t, a, b)
	require.NotEqual(t, a, K("invoices", "list", 2))
}

func TestKeyHasPrefix(t *testing.T) {
	t.Parallel()

	key := K("invoices", "list", "page", 3)
	require.True(t, key.HasPrefix(K("invoices")))
	require.True(t, key.HasPrefix(K("invoices", "list")))
	require.True(t, key.HasPrefix(key))
	require.False(t, key.HasPrefix(K("invoices", "detail")))
	// Prefixes only match on tuple boundaries.
	require.False(t, K("invoicesx", "list").HasPrefix(K("invoices")))
}

func TestCacheFetchCaches(t *testing.T) {
	t.Parallel()

	c := NewCache()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	got, err := FetchAs(context.Background(), c, K("answer"), 0, fetch)
	require.NoError(t, err)
	require.Equal(t, 42, got)

	got, err = FetchAs(context.Background(), c, K("answer"), 0, fetch)
	require.NoError(t, err)
	require.Equal(t, 42, got)
	require.Equal(t, 1, calls, "second fetch should hit the cache")
}

func TestCacheFetchError(t *testing.T) {
	t.Parallel()

	c := NewCache()
	boom := errors.New("boom")
	_, err := c.Fetch(context.Background(), K("bad"), 0, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	// Failed fetches leave no entry behind.
	_, ok := c.Get(K("bad"))
	require.False(t, ok)
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	c := NewCache()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	got, err := FetchAs(context.Background(), c, K("n"), 0, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, got)

	c.Invalidate(K("n"))
	// Stale values remain readable until replaced.
	stale, ok := GetAs[int](c, K("n"))
	require.True(t, ok)
	require.Equal(t, 1, stale)

	got, err = FetchAs(context.Background(), c, K("n"), 0, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestCacheTTLExpiry(t *testing.T) {
	t.Parallel()

	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := FetchAs(context.Background(), c, K("n"), time.Minute, fetch)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = FetchAs(context.Background(), c, K("n"), time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "entry should still be fresh")

	now = now.Add(2 * time.Minute)
	got, err := FetchAs(context.Background(), c, K("n"), time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, got, "aged-out entry should refetch")
}

func TestCacheInvalidatePrefix(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Set(K("invoices", "list", 1), "a")
	c.Set(K("invoices", "list", 2), "b")
	c.Set(K("invoices", "detail", "x"), "c")
	c.Set(K("customers", "list"), "d")

	n := c.InvalidatePrefix(K("invoices", "list"))
	require.Equal(t, 2, n)
	n = c.InvalidatePrefix(K("invoices"))
	require.Equal(t, 1, n, "detail entry marked, list entries already stale")
}

func TestCachePatch(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Set(K("v"), 10)

	ok := PatchAs(c, K("v"), func(v int) (int, bool) { return v + 1, true })
	require.True(t, ok)
	got, _ := GetAs[int](c, K("v"))
	require.Equal(t, 11, got)

	// Missing keys and declined patches are no-ops.
	require.False(t, PatchAs(c, K("missing"), func(v int) (int, bool) { return v, true }))
	require.False(t, PatchAs(c, K("v"), func(v int) (int, bool) { return 0, false }))
	got, _ = GetAs[int](c, K("v"))
	require.Equal(t, 11, got)
}

func TestCacheRevisionBumps(t *testing.T) {
	t.Parallel()

	c := NewCache()
	before := c.Revision().Get()
	c.Set(K("a"), 1)
	c.Invalidate(K("a"))
	c.Remove(K("a"))
	require.Equal(t, before+3, c.Revision().Get())
}

func TestCacheFetchDeduplicates(t *testing.T) {
	t.Parallel()

	c := NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Fetch(context.Background(), K("slow"), 0, fetch)
			require.NoError(t, err)
		}()
	}
	// Give the goroutines time to pile onto the flight group.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	require.Equal(t, int32(1), calls.Load(), "concurrent fetches should share one call")
}
