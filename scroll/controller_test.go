package scroll

import (
	"testing"
	"time"
)

type recordingTarget struct {
	offsets   []int
	behaviors []Behavior
}

func (r *recordingTarget) SetScrollOffset(offset int, behavior Behavior) {
	r.offsets = append(r.offsets, offset)
	r.behaviors = append(r.behaviors, behavior)
}

func TestControllerOffsetClamp(t *testing.T) {
	c := NewController(fixedCfg(10, 4, 12, 0))
	defer c.Close()

	c.SetOffset(-7)
	if got := c.Offset().Get(); got != 0 {
		t.Fatalf("offset = %d, want 0", got)
	}
	c.SetOffset(1000)
	// total 40, viewport 12
	if got := c.Offset().Get(); got != 28 {
		t.Fatalf("offset = %d, want 28", got)
	}
}

func TestControllerWindowProjection(t *testing.T) {
	c := NewController(fixedCfg(1000, 40, 400, 3))
	defer c.Close()

	c.SetOffset(2000)
	w := c.Window()
	if w.Start != 47 || w.End != 63 {
		t.Fatalf("window = [%d, %d), want [47, 63)", w.Start, w.End)
	}
}

func TestControllerScrollTo(t *testing.T) {
	target := &recordingTarget{}
	c := NewController(fixedCfg(100, 10, 50, 0), WithTarget(target))
	defer c.Close()

	c.ScrollToIndex(20, Instant)
	if got := c.Offset().Get(); got != 200 {
		t.Fatalf("offset = %d, want 200", got)
	}
	c.ScrollToBottom(Smooth)
	if got := c.Offset().Get(); got != 950 {
		t.Fatalf("offset = %d, want 950", got)
	}
	c.ScrollToTop(Instant)
	if got := c.Offset().Get(); got != 0 {
		t.Fatalf("offset = %d, want 0", got)
	}
	if len(target.offsets) != 3 {
		t.Fatalf("target calls = %d, want 3", len(target.offsets))
	}
	if target.offsets[1] != 950 || target.behaviors[1] != Smooth {
		t.Fatalf("second call = (%d, %v), want (950, Smooth)", target.offsets[1], target.behaviors[1])
	}
}

func TestControllerScrollToIndexClamped(t *testing.T) {
	c := NewController(fixedCfg(5, 10, 20, 0))
	defer c.Close()

	c.ScrollToIndex(99, Instant)
	// offset of index 4 is 40, clamped to total-viewport = 30
	if got := c.Offset().Get(); got != 30 {
		t.Fatalf("offset = %d, want 30", got)
	}
}

func TestControllerDebounce(t *testing.T) {
	c := NewController(fixedCfg(100, 4, 20, 0), WithDebounce(60*time.Millisecond))
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.SetOffset(i * 4)
		if !c.Scrolling().Get() {
			t.Fatalf("event %d: scrolling flag dropped mid-burst", i)
		}
		time.Sleep(15 * time.Millisecond)
	}
	// Still within the debounce window of the last event.
	if !c.Scrolling().Get() {
		t.Fatal("scrolling flag dropped before the quiet period elapsed")
	}
	time.Sleep(150 * time.Millisecond)
	if c.Scrolling().Get() {
		t.Fatal("scrolling flag still set after the quiet period")
	}
}

func TestControllerCloseCancelsTimer(t *testing.T) {
	c := NewController(fixedCfg(100, 4, 20, 0), WithDebounce(50*time.Millisecond))
	c.SetOffset(8)
	c.Close()
	if c.Scrolling().Get() {
		t.Fatal("scrolling flag set after Close")
	}
}

func TestControllerSetConfigReclamps(t *testing.T) {
	c := NewController(fixedCfg(100, 10, 50, 0))
	defer c.Close()

	c.SetOffset(900)
	c.SetConfig(fixedCfg(10, 10, 50, 0))
	// total 100, viewport 50
	if got := c.Offset().Get(); got != 50 {
		t.Fatalf("offset = %d, want 50", got)
	}
}
