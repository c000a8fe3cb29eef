// Package state provides small reactive primitives: signals, computed
// projections, and schedulers. Controllers own their state as signals and
// expose transitions as methods; views subscribe and re-render on change.
package state

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// Equal compares comparable values with ==.
func Equal[T comparable](a, b T) bool {
	return a == b
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

type listener struct {
	fn    func()
	sched Scheduler
}

// Signal holds a value and notifies subscribers when it changes.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	equal     EqualFunc[T]
	listeners map[int]listener
	nextID    int
}

// NewSignal creates a signal with an initial value. Every Set notifies.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// NewSignalEq creates a signal that suppresses notifications when the
// equality function reports the new value unchanged.
func NewSignalEq[T any](initial T, equal EqualFunc[T]) *Signal[T] {
	return &Signal[T]{value: initial, equal: equal}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and notifies subscribers. It reports whether the
// value changed.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	dispatch(snapshot)
	return true
}

// Update applies fn to the current value and stores the result.
// fn runs outside the lock; Update is not atomic across goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Subscribe registers a listener invoked synchronously on change.
// The returned function removes the listener; it is safe to call twice.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeOn(nil, fn)
}

// SubscribeOn registers a listener dispatched through the scheduler.
// A nil scheduler runs the listener in the caller of Set.
func (s *Signal[T]) SubscribeOn(sched Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[int]listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener{fn: fn, sched: sched}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Signal[T]) snapshotLocked() []listener {
	if len(s.listeners) == 0 {
		return nil
	}
	out := make([]listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func dispatch(listeners []listener) {
	for _, l := range listeners {
		if l.fn == nil {
			continue
		}
		if l.sched == nil {
			l.fn()
			continue
		}
		l.sched.Schedule(l.fn)
	}
}
