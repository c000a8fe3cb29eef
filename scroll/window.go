// Package scroll provides windowed (virtualized) list scrolling: a pure
// visible-range calculator, a controller that owns scroll state with a
// debounced scrolling flag, and an edge-triggered sentinel for infinite
// loading. Only the rows inside the computed window need to be rendered,
// which bounds drawing cost independent of list size.
package scroll

// HeightFunc maps an item index to its height in rows. It must return a
// positive value for every index in [0, ItemCount).
type HeightFunc func(index int) int

// Config describes the list geometry a window is computed from.
// When HeightFor is nil every item is ItemHeight rows tall.
type Config struct {
	ItemCount      int
	ItemHeight     int
	HeightFor      HeightFunc
	ViewportHeight int
	Overscan       int
}

// DefaultOverscan is the number of extra items included on each side of the
// visible range to mask blank rows during fast scrolling.
const DefaultOverscan = 3

// Window is the visible slice of a virtualized list.
// Invariant: 0 <= Start <= End <= Config.ItemCount. OffsetY is the exact
// cumulative height of items [0, Start).
type Window struct {
	Start       int
	End         int
	OffsetY     int
	TotalHeight int
}

// Compute derives the visible window for a scroll offset. It is a pure
// function of its inputs. Negative offsets are clamped to zero in both the
// fixed- and variable-height branches.
func Compute(cfg Config, scrollOffset int) Window {
	if cfg.ItemCount <= 0 {
		return Window{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if cfg.Overscan < 0 {
		cfg.Overscan = 0
	}
	if cfg.HeightFor != nil {
		return computeVariable(cfg, scrollOffset)
	}
	return computeFixed(cfg, scrollOffset)
}

func computeFixed(cfg Config, offset int) Window {
	h := cfg.ItemHeight
	if h <= 0 {
		return Window{}
	}
	start := offset/h - cfg.Overscan
	if start < 0 {
		start = 0
	}
	visible := ceilDiv(cfg.ViewportHeight, h)
	end := start + visible + 2*cfg.Overscan
	if end > cfg.ItemCount {
		end = cfg.ItemCount
	}
	if start > end {
		start = end
	}
	return Window{
		Start:       start,
		End:         end,
		OffsetY:     start * h,
		TotalHeight: cfg.ItemCount * h,
	}
}

func computeVariable(cfg Config, offset int) Window {
	count := cfg.ItemCount
	heights := make([]int, count)
	total := 0
	for i := 0; i < count; i++ {
		h := cfg.HeightFor(i)
		if h < 0 {
			h = 0
		}
		heights[i] = h
		total += h
	}

	// First item whose bottom edge is past the offset.
	first := count
	y := 0
	for i := 0; i < count; i++ {
		if y+heights[i] > offset {
			first = i
			break
		}
		y += heights[i]
	}

	start := first - cfg.Overscan
	if start < 0 {
		start = 0
	}
	offsetY := 0
	for i := 0; i < start; i++ {
		offsetY += heights[i]
	}

	// Accumulate from start until the viewport bottom is covered.
	end := start
	y = offsetY
	for i := start; i < count; i++ {
		if y >= offset+cfg.ViewportHeight {
			break
		}
		y += heights[i]
		end = i + 1
	}
	end += cfg.Overscan
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}

	return Window{Start: start, End: end, OffsetY: offsetY, TotalHeight: total}
}

// TotalHeight returns the summed height of all items.
func TotalHeight(cfg Config) int {
	if cfg.ItemCount <= 0 {
		return 0
	}
	if cfg.HeightFor == nil {
		if cfg.ItemHeight <= 0 {
			return 0
		}
		return cfg.ItemCount * cfg.ItemHeight
	}
	total := 0
	for i := 0; i < cfg.ItemCount; i++ {
		if h := cfg.HeightFor(i); h > 0 {
			total += h
		}
	}
	return total
}

// OffsetOfIndex returns the cumulative height of items before index. The
// index is clamped into [0, ItemCount].
func OffsetOfIndex(cfg Config, index int) int {
	if cfg.ItemCount <= 0 || index <= 0 {
		return 0
	}
	if index > cfg.ItemCount {
		index = cfg.ItemCount
	}
	if cfg.HeightFor == nil {
		if cfg.ItemHeight <= 0 {
			return 0
		}
		return index * cfg.ItemHeight
	}
	total := 0
	for i := 0; i < index; i++ {
		if h := cfg.HeightFor(i); h > 0 {
			total += h
		}
	}
	return total
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
