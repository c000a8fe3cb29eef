package state

import "sync"

// Computed derives a value from other signals and recomputes when any
// dependency changes. It is itself subscribable.
type Computed[T any] struct {
	signal  *Signal[T]
	compute func() T
	mu      sync.Mutex
	unsubs  []func()
	sched   Scheduler
}

// NewComputed creates a derived value that recomputes synchronously.
func NewComputed[T any](compute func() T, deps ...Subscribable) *Computed[T] {
	return NewComputedOn(nil, compute, deps...)
}

// NewComputedOn creates a derived value whose recomputes are dispatched
// through the scheduler. A nil scheduler recomputes synchronously.
func NewComputedOn[T any](sched Scheduler, compute func() T, deps ...Subscribable) *Computed[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	c := &Computed[T]{
		signal:  NewSignal(compute()),
		compute: compute,
		sched:   sched,
	}
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		if unsub := dep.Subscribe(c.invalidate); unsub != nil {
			c.unsubs = append(c.unsubs, unsub)
		}
	}
	return c
}

// Get returns the current computed value.
func (c *Computed[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.signal.Get()
}

// Subscribe registers a listener for change notifications.
func (c *Computed[T]) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.signal.Subscribe(fn)
}

// SubscribeOn registers a listener dispatched through the scheduler.
func (c *Computed[T]) SubscribeOn(sched Scheduler, fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.signal.SubscribeOn(sched, fn)
}

// Stop detaches the computed from its dependencies.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}

func (c *Computed[T]) invalidate() {
	if c == nil {
		return
	}
	if c.sched == nil {
		c.recompute()
		return
	}
	c.sched.Schedule(c.recompute)
}

func (c *Computed[T]) recompute() {
	c.signal.Set(c.compute())
}
