package state

import "testing"

func TestComputedTracksDependencies(t *testing.T) {
	a := NewSignal(2)
	b := NewSignal(3)
	sum := NewComputed(func() int { return a.Get() + b.Get() }, a, b)
	defer sum.Stop()

	if got := sum.Get(); got != 5 {
		t.Fatalf("sum = %d, want 5", got)
	}
	a.Set(10)
	if got := sum.Get(); got != 13 {
		t.Fatalf("sum = %d, want 13", got)
	}
}

func TestComputedStop(t *testing.T) {
	a := NewSignal(1)
	double := NewComputed(func() int { return a.Get() * 2 }, a)
	double.Stop()
	a.Set(5)
	if got := double.Get(); got != 2 {
		t.Fatalf("after stop = %d, want stale 2", got)
	}
}

func TestComputedOnQueue(t *testing.T) {
	a := NewSignal(1)
	q := NewQueue()
	double := NewComputedOn(q, func() int { return a.Get() * 2 }, a)
	defer double.Stop()

	a.Set(4)
	if got := double.Get(); got != 2 {
		t.Fatalf("before flush = %d, want stale 2", got)
	}
	q.Flush()
	if got := double.Get(); got != 8 {
		t.Fatalf("after flush = %d, want 8", got)
	}
}

func TestSubscriptionsClear(t *testing.T) {
	a := NewSignal(0)
	var subs Subscriptions
	fired := 0
	subs.Watch(a, func() { fired++ })
	a.Set(1)
	subs.Clear()
	a.Set(2)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}
