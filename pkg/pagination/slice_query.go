package pagination

import (
	"context"
	"slices"
)

// SliceQuery is an in-memory Query over a slice. The slice is never modified.
type SliceQuery[T any] struct {
	items   []T
	filters []func(T) bool
	orders  []func(a, b T) int
	window  Window
}

func FromSlice[T any](items []T) *SliceQuery[T] {
	return &SliceQuery[T]{items: items}
}

func (q *SliceQuery[T]) clone() *SliceQuery[T] {
	return &SliceQuery[T]{
		items:   q.items,
		filters: slices.Clone(q.filters),
		orders:  slices.Clone(q.orders),
		window:  q.window,
	}
}

// Where keeps the items matching pred.
func (q *SliceQuery[T]) Where(pred func(T) bool) *SliceQuery[T] {
	c := q.clone()
	c.filters = append(c.filters, pred)
	return c
}

// OrderByFunc orders by a typed comparator instead of a named field.
func (q *SliceQuery[T]) OrderByFunc(compare func(a, b T) int, descending bool) *SliceQuery[T] {
	c := q.clone()
	if descending {
		c.orders = append(c.orders, func(a, b T) int { return compare(b, a) })
	} else {
		c.orders = append(c.orders, compare)
	}
	return c
}

func (q *SliceQuery[T]) OrderBy(key SortKey, descending bool) Query[T] {
	return q.OrderByFunc(func(a, b T) int { return key.Compare(a, b) }, descending)
}

func (q *SliceQuery[T]) Skip(n int) Query[T] {
	c := q.clone()
	c.window = c.window.Skip(n)
	return c
}

func (q *SliceQuery[T]) Take(n int) Query[T] {
	c := q.clone()
	c.window = c.window.Take(n)
	return c
}

func (q *SliceQuery[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return q.window.Clamp(len(q.filtered())), nil
}

func (q *SliceQuery[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := q.filtered()
	if len(q.orders) > 0 {
		slices.SortStableFunc(items, func(a, b T) int {
			for _, order := range q.orders {
				if c := order(a, b); c != 0 {
					return c
				}
			}
			return 0
		})
	}

	start, end := q.window.Bounds(len(items))
	return slices.Clip(items[start:end]), nil
}

// filtered always returns a fresh slice so sorting never touches the source.
func (q *SliceQuery[T]) filtered() []T {
	out := make([]T, 0, len(q.items))
	for _, it := range q.items {
		if q.matches(it) {
			out = append(out, it)
		}
	}
	return out
}

func (q *SliceQuery[T]) matches(it T) bool {
	for _, f := range q.filters {
		if !f(it) {
			return false
		}
	}
	return true
}

var _ Query[struct{}] = (*SliceQuery[struct{}])(nil)
