package scroll

import "sync"

// Sentinel is an edge-triggered "near the end" detector for infinite
// loading. It mirrors a trailing marker element: the load callback fires
// exactly once per invisible-to-visible transition, gated on the caller's
// hasMore and loading flags sampled at that moment. The sentinel does not
// serialize loads; at most one in-flight load is the caller's contract,
// enforced through its loading flag.
type Sentinel struct {
	mu      sync.Mutex
	visible bool

	hasMore func() bool
	loading func() bool
	onLoad  func()
}

// NewSentinel creates a sentinel. Any nil function behaves as a constant
// false (or no-op for onLoad).
func NewSentinel(hasMore, loading func() bool, onLoad func()) *Sentinel {
	return &Sentinel{hasMore: hasMore, loading: loading, onLoad: onLoad}
}

// SetVisible reports the marker's visibility. Only a false-to-true
// transition can fire the load callback; repeated true reports are ignored
// until the marker leaves view again.
func (s *Sentinel) SetVisible(visible bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	wasVisible := s.visible
	s.visible = visible
	s.mu.Unlock()

	if !visible || wasVisible {
		return
	}
	if s.hasMore == nil || !s.hasMore() {
		return
	}
	if s.loading != nil && s.loading() {
		return
	}
	if s.onLoad != nil {
		s.onLoad()
	}
}

// ObserveWindow derives the marker's visibility from a computed window: the
// marker sits after the last item, so it is visible when the window reaches
// the end of the list.
func (s *Sentinel) ObserveWindow(w Window, itemCount int) {
	if s == nil {
		return
	}
	s.SetVisible(itemCount > 0 && w.End >= itemCount)
}

// Reset forgets the current visibility so the next observation starts
// fresh, as when an observer is torn down and re-established.
func (s *Sentinel) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}
