package query

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ledgerline/ledgerline/state"
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache is a keyed fetch cache. A cached value is served while it is fresh:
// not marked stale and younger than the requested TTL. Anything else causes
// a fetch, with concurrent fetches for the same key collapsed into one.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	rev     *state.Signal[uint64]
	now     func() time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		rev:     state.NewSignal(uint64(0)),
		now:     time.Now,
	}
}

// Revision exposes a signal that increments on every cache write, so views
// can subscribe to cache changes without knowing individual keys.
func (c *Cache) Revision() *state.Signal[uint64] {
	if c == nil {
		return nil
	}
	return c.rev
}

// Fetch returns the cached value for key if it is fresh, otherwise loads it
// with fn and caches the result. A ttl of zero or less means a cached value
// never expires by age; it is refetched only after invalidation.
func (c *Cache) Fetch(ctx context.Context, key Key, ttl time.Duration, fn FetchFunc) (any, error) {
	if c == nil || fn == nil {
		return nil, context.Canceled
	}
	if value, ok := c.fresh(key, ttl); ok {
		return value, nil
	}
	value, err, _ := c.group.Do(string(key), func() (any, error) {
		// A concurrent caller may have filled the entry while this one
		// waited on the flight group.
		if value, ok := c.fresh(key, ttl); ok {
			return value, nil
		}
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Get returns the cached value for key, fresh or stale.
func (c *Cache) Get(key Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores a value for key and marks it fresh. Mutations use Set to push
// server responses into the cache without a refetch.
func (c *Cache) Set(key Key, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
	c.bump()
}

// Patch applies fn to the cached value for key, if present. fn receives the
// current value and returns the replacement; returning false leaves the
// entry untouched. The entry keeps its fetched-at time, so a patched entry
// expires on the original schedule.
func (c *Cache) Patch(key Key, fn func(value any) (any, bool)) bool {
	if c == nil || fn == nil {
		return false
	}
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	next, ok := fn(e.value)
	if !ok {
		c.mu.Unlock()
		return false
	}
	e.value = next
	c.mu.Unlock()
	c.bump()
	return true
}

// PatchPrefix applies fn to every cached value whose key begins with
// prefix and returns how many entries changed. Mutations use it to edit all
// cached pages of a list at once.
func (c *Cache) PatchPrefix(prefix Key, fn func(value any) (any, bool)) int {
	if c == nil || fn == nil {
		return 0
	}
	c.mu.Lock()
	n := 0
	for key, e := range c.entries {
		if !key.HasPrefix(prefix) {
			continue
		}
		if next, ok := fn(e.value); ok {
			e.value = next
			n++
		}
	}
	c.mu.Unlock()
	if n > 0 {
		c.bump()
	}
	return n
}

// Invalidate marks the entry for key stale. The value stays readable via
// Get until the next Fetch replaces it.
func (c *Cache) Invalidate(key Key) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
	c.mu.Unlock()
	c.bump()
}

// InvalidatePrefix marks every entry whose key begins with prefix stale and
// returns how many were marked.
func (c *Cache) InvalidatePrefix(prefix Key) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	n := 0
	for key, e := range c.entries {
		if key.HasPrefix(prefix) && !e.stale {
			e.stale = true
			n++
		}
	}
	c.mu.Unlock()
	if n > 0 {
		c.bump()
	}
	return n
}

// Remove deletes the entry for key.
func (c *Cache) Remove(key Key) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.bump()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) fresh(key Key, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	if ttl > 0 && c.now().Sub(e.fetchedAt) > ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) bump() {
	c.rev.Update(func(v uint64) uint64 { return v + 1 })
}

// FetchAs is a typed wrapper over Cache.Fetch.
func FetchAs[T any](ctx context.Context, c *Cache, key Key, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	value, err := c.Fetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// GetAs is a typed wrapper over Cache.Get.
func GetAs[T any](c *Cache, key Key) (T, bool) {
	var zero T
	value, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// PatchAs applies a typed patch to the cached value for key. Entries of a
// different type are left untouched.
func PatchAs[T any](c *Cache, key Key, fn func(value T) (T, bool)) bool {
	if fn == nil {
		return false
	}
	return c.Patch(key, func(value any) (any, bool) {
		typed, ok := value.(T)
		if !ok {
			return nil, false
		}
		next, ok := fn(typed)
		if !ok {
			return nil, false
		}
		return next, true
	})
}
