package state

import (
	"sync"
	"testing"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(10)
	if got := s.Get(); got != 10 {
		t.Fatalf("initial = %d, want 10", got)
	}
	if !s.Set(20) {
		t.Fatal("Set reported no change")
	}
	if got := s.Get(); got != 20 {
		t.Fatalf("after set = %d, want 20", got)
	}
}

func TestSignalEqualitySuppression(t *testing.T) {
	s := NewSignalEq(5, Equal[int])
	fired := 0
	unsub := s.Subscribe(func() { fired++ })
	defer unsub()

	if s.Set(5) {
		t.Fatal("Set with equal value reported a change")
	}
	if fired != 0 {
		t.Fatalf("fired = %d, want 0", fired)
	}
	s.Set(6)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(0)
	fired := 0
	unsub := s.Subscribe(func() { fired++ })
	s.Set(1)
	unsub()
	unsub() // second call is a no-op
	s.Set(2)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(3)
	s.Update(func(v int) int { return v * 2 })
	if got := s.Get(); got != 6 {
		t.Fatalf("after update = %d, want 6", got)
	}
}

func TestSignalSubscribeOnQueue(t *testing.T) {
	s := NewSignal(0)
	q := NewQueue()
	fired := 0
	unsub := s.SubscribeOn(q, func() { fired++ })
	defer unsub()

	s.Set(1)
	s.Set(2)
	if fired != 0 {
		t.Fatalf("fired before flush = %d, want 0", fired)
	}
	if flushed := q.Flush(); flushed != 2 {
		t.Fatalf("flushed = %d, want 2", flushed)
	}
	if fired != 2 {
		t.Fatalf("fired after flush = %d, want 2", fired)
	}
}

func TestSignalConcurrentSet(t *testing.T) {
	s := NewSignal(0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Set(v)
		}(i)
	}
	wg.Wait()
	if got := s.Get(); got < 0 || got >= 16 {
		t.Fatalf("value = %d, want within [0,16)", got)
	}
}
