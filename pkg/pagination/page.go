package pagination

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
)

// Page is one slice of a larger result set plus the size of that set.
type Page[T any] struct {
	Data         []T `json:"data"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// NewRawPage wraps data that was paged elsewhere.
func NewRawPage[T any](data []T, totalPages, totalRecords int) *Page[T] {
	if data == nil {
		data = []T{}
	}
	return &Page[T]{Data: data, TotalPages: totalPages, TotalRecords: totalRecords}
}

// BuildPage runs spec against source.
//
// Sort properties are resolved before anything executes, so an unknown property fails without
// touching the source. Sorting is composed first and the total is counted on the sorted, unpaged
// query; a backend that rejects a sort key therefore fails on Count before any data is read.
// A page number past the last page falls back to page 1. The page data is materialised last.
func BuildPage[T any](ctx context.Context, source Query[T], spec Specification) (*Page[T], error) {
	if source == nil {
		return nil, apperr.NewArgument("source", nil, "query is required")
	}

	keys, err := ResolveSorts[T](spec.Sorts)
	if err != nil {
		return nil, err
	}

	q := orderBy(source, keys, spec.Sorts)

	totalRecords, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	spec = spec.Normalize(totalRecords)
	q = ApplyPaging(q, spec)

	data, err := q.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list page: %w", err)
	}

	return NewRawPage(data, spec.TotalPages(totalRecords), totalRecords), nil
}

// NewPage pages source without sorting.
func NewPage[T any](ctx context.Context, source Query[T], req *PagingRequest) (*Page[T], error) {
	spec, err := FromPaging(req)
	if err != nil {
		return nil, err
	}
	return BuildPage(ctx, source, spec)
}

// NewSortedPage sorts source by req.SortProperty, when set, and pages it.
func NewSortedPage[T any](ctx context.Context, source Query[T], req *SortablePagingRequest) (*Page[T], error) {
	spec, err := FromSortable(req)
	if err != nil {
		return nil, err
	}
	return BuildPage(ctx, source, spec)
}

// ToPage sorts and pages an in-memory slice.
func ToPage[T any](items []T, req *SortablePagingRequest) (*Page[T], error) {
	return NewSortedPage[T](context.Background(), FromSlice(items), req)
}

// ToPlainPage pages an in-memory slice without sorting.
func ToPlainPage[T any](items []T, req *PagingRequest) (*Page[T], error) {
	return NewPage[T](context.Background(), FromSlice(items), req)
}
