package scroll

import (
	"sync"
	"time"

	"github.com/ledgerline/ledgerline/state"
)

// Behavior selects how a programmatic scroll reaches its target.
type Behavior int

const (
	// Instant jumps straight to the target offset.
	Instant Behavior = iota
	// Smooth asks the target to animate toward the offset.
	Smooth
)

// Target receives programmatic scroll commands. The caller hands the
// controller an explicit target instead of the controller locating one
// through ambient environment state.
type Target interface {
	SetScrollOffset(offset int, behavior Behavior)
}

// DefaultDebounce is how long the scrolling flag stays set after the last
// scroll event.
const DefaultDebounce = 150 * time.Millisecond

// Controller owns the mutable scroll state for one virtualized list: the
// current offset and a debounced "is scrolling" flag. The visible window is
// a pure projection of that state plus the static config.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	debounce time.Duration
	target   Target
	timer    *time.Timer
	closed   bool

	offset    *state.Signal[int]
	scrolling *state.Signal[bool]
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the quiet period after which the scrolling flag clears.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithTarget sets the recipient of programmatic scroll commands.
func WithTarget(t Target) Option {
	return func(c *Controller) { c.target = t }
}

// NewController creates a controller for the given geometry.
func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		debounce:  DefaultDebounce,
		offset:    state.NewSignalEq(0, state.Equal[int]),
		scrolling: state.NewSignalEq(false, state.Equal[bool]),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SetConfig replaces the list geometry. The stored offset is re-clamped
// against the new total height.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	c.offset.Set(c.clamp(c.offset.Get()))
}

// Config returns the current list geometry.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Offset exposes the scroll offset signal for subscription.
func (c *Controller) Offset() *state.Signal[int] {
	if c == nil {
		return nil
	}
	return c.offset
}

// Scrolling exposes the debounced scrolling flag for subscription. The flag
// drives UI affordances only; the window math never reads it.
func (c *Controller) Scrolling() *state.Signal[bool] {
	if c == nil {
		return nil
	}
	return c.scrolling
}

// SetOffset records a scroll event: it clamps and stores the offset, raises
// the scrolling flag, and re-arms the debounce timer. The flag drops only
// after the debounce interval passes with no further events.
func (c *Controller) SetOffset(offset int) {
	if c == nil {
		return
	}
	c.offset.Set(c.clamp(offset))
	c.scrolling.Set(true)
	c.rearm()
}

// Window projects the current visible range from the stored offset.
func (c *Controller) Window() Window {
	if c == nil {
		return Window{}
	}
	return Compute(c.Config(), c.offset.Get())
}

// ScrollToIndex scrolls so the item at index sits at the top of the
// viewport. The index is clamped into the valid range.
func (c *Controller) ScrollToIndex(index int, behavior Behavior) {
	if c == nil {
		return
	}
	cfg := c.Config()
	if index < 0 {
		index = 0
	}
	if index >= cfg.ItemCount {
		index = cfg.ItemCount - 1
	}
	if index < 0 {
		index = 0
	}
	c.applyTarget(OffsetOfIndex(cfg, index), behavior)
}

// ScrollToTop scrolls to offset zero.
func (c *Controller) ScrollToTop(behavior Behavior) {
	if c == nil {
		return
	}
	c.applyTarget(0, behavior)
}

// ScrollToBottom scrolls to the end of the list.
func (c *Controller) ScrollToBottom(behavior Behavior) {
	if c == nil {
		return
	}
	cfg := c.Config()
	c.applyTarget(TotalHeight(cfg)-cfg.ViewportHeight, behavior)
}

// Close cancels any pending debounce timer and clears the scrolling flag.
// The controller must not be used after Close.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.scrolling.Set(false)
}

func (c *Controller) applyTarget(offset int, behavior Behavior) {
	offset = c.clamp(offset)
	c.offset.Set(offset)
	c.mu.Lock()
	target := c.target
	c.mu.Unlock()
	if target != nil {
		target.SetScrollOffset(offset, behavior)
	}
}

// clamp bounds an offset into [0, totalHeight-viewportHeight].
func (c *Controller) clamp(offset int) int {
	cfg := c.Config()
	max := TotalHeight(cfg) - cfg.ViewportHeight
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

// rearm cancels the previous debounce timer, if any, and schedules a new
// one. The single-slot handle guarantees at most one pending timer.
func (c *Controller) rearm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.scrolling.Set(false)
	})
}
