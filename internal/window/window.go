// Package window computes which slice of a list intersects the current
// scroll viewport, so the UI only materializes a bounded number of
// rendered items. All items are treated as a uniform fixed height; the
// arithmetic is pure and synchronous so it can run on every scroll
// event without blocking.
package window

// Range is a half-open [Start, End) index window over a list.
type Range struct {
	Start int
	End   int
}

// DefaultVisibleCount is the window size applied whenever the
// underlying list changes.
const DefaultVisibleCount = 10

// Reset is the window applied to a freshly (re)filtered list.
func Reset() Range {
	return Range{Start: 0, End: DefaultVisibleCount}
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Clamp bounds the range to a list of n items.
func (r Range) Clamp(n int) Range {
	if r.Start > n {
		r.Start = n
	}
	if r.End > n {
		r.End = n
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// Slice returns the items covered by the range, clamped to the list.
// The result aliases the input.
func Slice[T any](items []T, r Range) []T {
	r = r.Clamp(len(items))
	return items[r.Start:r.End]
}

// Config holds the fixed geometry of a windowed list.
type Config struct {
	// ItemHeight is the uniform height of one item in layout units.
	ItemHeight int
	// Buffer is the number of extra items kept rendered on each side
	// of the viewport.
	Buffer int
}

// Compute derives the visible range for the given scroll offset and
// viewport height:
//
//	visibleCount = ceil(viewportHeight / ItemHeight) + Buffer
//	start        = max(0, floor(scrollOffset / ItemHeight) - Buffer)
//	end          = start + visibleCount
func (c Config) Compute(scrollOffset, viewportHeight int) Range {
	if c.ItemHeight <= 0 {
		return Reset()
	}

	visibleCount := ceilDiv(viewportHeight, c.ItemHeight) + c.Buffer
	start := scrollOffset/c.ItemHeight - c.Buffer
	if start < 0 {
		start = 0
	}
	return Range{Start: start, End: start + visibleCount}
}

// OffsetFor returns the vertical offset of the first rendered item, so
// the scrollable region keeps its full height while only the window is
// materialized.
func (c Config) OffsetFor(start int) int {
	return start * c.ItemHeight
}

// TotalHeight returns the scrollable height of an n-item list.
func (c Config) TotalHeight(n int) int {
	return n * c.ItemHeight
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
