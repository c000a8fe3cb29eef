package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerline/ledgerline/query"
	"github.com/ledgerline/ledgerline/state"
)

// API is the client surface the service needs. *Client satisfies it; tests
// substitute a fake.
type API interface {
	List(ctx context.Context, params ListParams) (Page, error)
	Get(ctx context.Context, id string) (Invoice, error)
	Stats(ctx context.Context) (Stats, error)
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
	Delete(ctx context.Context, id string) error
}

const keyRoot = "invoices"

// ListKey is the cache key for one page of a list query.
func ListKey(params ListParams) query.Key {
	return query.K(keyRoot, "list", params)
}

// ListPrefix is the shared prefix of all list page keys, for bulk
// invalidation.
func ListPrefix() query.Key {
	return query.K(keyRoot, "list")
}

// DetailKey is the cache key for a single invoice.
func DetailKey(id string) query.Key {
	return query.K(keyRoot, "detail", id)
}

// StatsKey is the cache key for aggregate totals.
func StatsKey() query.Key {
	return query.K(keyRoot, "stats")
}

// Service wraps the API client with a query cache. Reads go through the
// cache; mutations push the server's copy into the cache, patch cached list
// pages, and invalidate what they cannot patch precisely.
type Service struct {
	api     API
	cache   *query.Cache
	ttl     time.Duration
	loading *state.Signal[bool]
}

// NewService creates a service. A ttl of zero or less keeps cached reads
// until they are invalidated by a mutation.
func NewService(api API, cache *query.Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = query.NewCache()
	}
	return &Service{
		api:     api,
		cache:   cache,
		ttl:     ttl,
		loading: state.NewSignalEq(false, state.Equal[bool]),
	}
}

// Cache returns the underlying query cache.
func (s *Service) Cache() *query.Cache {
	if s == nil {
		return nil
	}
	return s.cache
}

// Loading exposes the in-flight list fetch flag. The scroll sentinel gates
// its load callback on this; the gate is best effort, not a lock.
func (s *Service) Loading() *state.Signal[bool] {
	if s == nil {
		return nil
	}
	return s.loading
}

// List returns one page of invoices, served from cache when fresh.
func (s *Service) List(ctx context.Context, params ListParams) (Page, error) {
	if s == nil || s.api == nil {
		return Page{}, errors.New("invoice service not configured")
	}
	s.loading.Set(true)
	defer s.loading.Set(false)
	return query.FetchAs(ctx, s.cache, ListKey(params), s.ttl, func(ctx context.Context) (Page, error) {
		return s.api.List(ctx, params)
	})
}

// Get returns a single invoice, served from cache when fresh. A 404 repairs
// the cache: the detail entry is dropped and list pages are invalidated.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	if s == nil || s.api == nil {
		return Invoice{}, errors.New("invoice service not configured")
	}
	inv, err := query.FetchAs(ctx, s.cache, DetailKey(id), s.ttl, func(ctx context.Context) (Invoice, error) {
		return s.api.Get(ctx, id)
	})
	if errors.Is(err, ErrNotFound) {
		s.dropFromCache(id)
	}
	return inv, err
}

// Stats returns aggregate totals, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.api == nil {
		return Stats{}, errors.New("invoice service not configured")
	}
	return query.FetchAs(ctx, s.cache, StatsKey(), s.ttl, func(ctx context.Context) (Stats, error) {
		return s.api.Stats(ctx)
	})
}

// Create stores a new invoice. The server copy lands in the detail cache
// and list/stats queries are invalidated so pagination stays correct.
func (s *Service) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	if s == nil || s.api == nil {
		return Invoice{}, errors.New("invoice service not configured")
	}
	created, err := s.api.Create(ctx, inv)
	if err != nil {
		return Invoice{}, err
	}
	s.cache.Set(DetailKey(created.ID), created)
	s.cache.InvalidatePrefix(ListPrefix())
	s.cache.Invalidate(StatsKey())
	return created, nil
}

// Update replaces an invoice. Cached list pages are patched in place with
// the server copy; stats are invalidated. A 404 repairs the cache instead.
func (s *Service) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	if s == nil || s.api == nil {
		return Invoice{}, errors.New("invoice service not configured")
	}
	updated, err := s.api.Update(ctx, inv)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.dropFromCache(inv.ID)
		}
		return Invoice{}, err
	}
	s.cache.Set(DetailKey(updated.ID), updated)
	s.cache.PatchPrefix(ListPrefix(), func(value any) (any, bool) {
		page, ok := value.(Page)
		if !ok {
			return nil, false
		}
		changed := false
		items := make([]Invoice, len(page.Items))
		copy(items, page.Items)
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = updated
				changed = true
			}
		}
		if !changed {
			return nil, false
		}
		page.Items = items
		return page, true
	})
	s.cache.Invalidate(StatsKey())
	return updated, nil
}

// Delete removes an invoice and edits it out of cached list pages. The page
// totals shrink optimistically; the list is also invalidated so the next
// fetch restores exact pagination.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.api == nil {
		return errors.New("invoice service not configured")
	}
	if err := s.api.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.dropFromCache(id)
		}
		return err
	}
	s.dropFromCache(id)
	return nil
}

func (s *Service) dropFromCache(id string) {
	s.cache.Remove(DetailKey(id))
	s.cache.PatchPrefix(ListPrefix(), func(value any) (any, bool) {
		page, ok := value.(Page)
		if !ok {
			return nil, false
		}
		items := make([]Invoice, 0, len(page.Items))
		for _, item := range page.Items {
			if item.ID != id {
				items = append(items, item)
			}
		}
		if len(items) == len(page.Items) {
			return nil, false
		}
		page.Items = items
		if page.Total > 0 {
			page.Total--
		}
		return page, true
	})
	s.cache.InvalidatePrefix(ListPrefix())
	s.cache.Invalidate(StatsKey())
}
