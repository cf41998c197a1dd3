package pagination

import (
	"context"
	"math"
)

// Query is a lazily composed, countable and orderable source of T.
//
// Composition methods return a new Query and never execute anything; Count and List are the
// only execution points. Orderings always apply before the Skip/Take window, and every OrderBy
// after the first sub-orders the results stably.
type Query[T any] interface {
	Count(ctx context.Context) (int, error)
	OrderBy(key SortKey, descending bool) Query[T]
	Skip(n int) Query[T]
	Take(n int) Query[T]
	List(ctx context.Context) ([]T, error)
}

// Window tracks the skip/take state of a query. The zero value selects everything.
type Window struct {
	offset  int
	limit   int
	limited bool
}

func (w Window) Skip(n int) Window {
	if n <= 0 {
		return w
	}
	w.offset = addSaturating(w.offset, n)
	if w.limited {
		w.limit = max(w.limit-n, 0)
	}
	return w
}

func (w Window) Take(n int) Window {
	n = max(n, 0)
	if !w.limited || n < w.limit {
		w.limit = n
		w.limited = true
	}
	return w
}

func (w Window) Offset() int {
	return w.offset
}

// Limit returns the maximum number of items selected; ok is false when the window is open-ended
// or limited to UnboundedPageSize.
func (w Window) Limit() (limit int, ok bool) {
	if !w.limited || w.limit == UnboundedPageSize {
		return 0, false
	}
	return w.limit, true
}

// Bounds returns the slice bounds of the window over n items.
func (w Window) Bounds(n int) (start, end int) {
	start = min(w.offset, n)
	end = n
	if w.limited {
		end = min(addSaturating(start, w.limit), n)
	}
	return start, end
}

// Clamp returns how many of n items fall inside the window.
func (w Window) Clamp(n int) int {
	start, end := w.Bounds(n)
	return end - start
}

func addSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSaturating(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
