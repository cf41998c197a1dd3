package es

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/count"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// MaxResultWindow is the default index.max_result_window; from+size may not exceed it.
const MaxResultWindow = 10_000

// Query is a pagination.Query over one index. Documents decode into T from _source, and sort
// fields are named by T's json tags joined with dots.
type Query[T any] struct {
	client  *elasticsearch.TypedClient
	index   string
	filters []types.Query
	sorts   []types.SortCombinations
	window  pagination.Window
}

func From[T any](client *elasticsearch.TypedClient, index string) *Query[T] {
	return &Query[T]{client: client, index: index}
}

func (q *Query[T]) clone() *Query[T] {
	c := *q
	c.filters = slices.Clone(q.filters)
	c.sorts = slices.Clone(q.sorts)
	return &c
}

// Filter adds a non-scoring clause; clauses are combined with AND. A nil filter is ignored.
func (q *Query[T]) Filter(filter *types.Query) *Query[T] {
	c := q.clone()
	if filter != nil {
		c.filters = append(c.filters, *filter)
	}
	return c
}

func (q *Query[T]) OrderBy(key pagination.SortKey, descending bool) pagination.Query[T] {
	c := q.clone()

	order, missing := sortorder.Asc, "_first"
	if descending {
		order, missing = sortorder.Desc, "_last"
	}
	c.sorts = append(c.sorts, &types.SortOptions{
		SortOptions: map[string]types.FieldSort{
			key.TagPath("json", "."): {Order: &order, Missing: missing},
		},
	})
	return c
}

func (q *Query[T]) Skip(n int) pagination.Query[T] {
	c := q.clone()
	c.window = c.window.Skip(n)
	return c
}

func (q *Query[T]) Take(n int) pagination.Query[T] {
	c := q.clone()
	c.window = c.window.Take(n)
	return c
}

func (q *Query[T]) Count(ctx context.Context) (int, error) {
	res, err := q.client.Count().
		Index(q.index).
		Request(&count.Request{Query: q.query()}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", q.index, err)
	}
	return q.window.Clamp(int(res.Count)), nil
}

func (q *Query[T]) List(ctx context.Context) ([]T, error) {
	from, size, err := q.span(func() (int, error) { return q.Count(ctx) })
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []T{}, nil
	}

	res, err := q.client.Search().Index(q.index).Request(q.searchRequest(from, size)).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", q.index, err)
	}

	items := make([]T, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var item T
		if err := json.Unmarshal(hit.Source_, &item); err != nil {
			return nil, fmt.Errorf("failed to decode document from %s: %w", q.index, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// span returns the from/size pair List searches with. A window that does not provably fit inside
// MaxResultWindow is sized by count, the number of matches left in the window; if those still
// reach past MaxResultWindow the page is rejected rather than cut short.
func (q *Query[T]) span(count func() (int, error)) (from, size int, err error) {
	from = q.window.Offset()
	limit, limited := q.window.Limit()
	if limited && limit == 0 {
		return 0, 0, nil
	}
	if limited && from < MaxResultWindow && limit <= MaxResultWindow-from {
		return from, limit, nil
	}

	remaining, err := count()
	if err != nil {
		return 0, 0, err
	}
	switch {
	case remaining == 0:
		return 0, 0, nil
	case from >= MaxResultWindow:
		return 0, 0, apperr.NewArgument("offset", from,
			fmt.Sprintf("offset exceeds the result window of %d", MaxResultWindow))
	case remaining > MaxResultWindow-from:
		var pageSize any = "unbounded"
		if limited {
			pageSize = limit
		}
		return 0, 0, apperr.NewArgument("pageSize", pageSize,
			fmt.Sprintf("page extends past the result window of %d", MaxResultWindow))
	}
	return from, remaining, nil
}

func (q *Query[T]) searchRequest(from, size int) *search.Request {
	req := search.NewRequest()
	req.Query = q.query()
	req.From = &from
	req.Size = &size
	if len(q.sorts) > 0 {
		req.Sort = q.sorts
	}
	return req
}

func (q *Query[T]) query() *types.Query {
	switch len(q.filters) {
	case 0:
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	case 1:
		return &q.filters[0]
	default:
		return &types.Query{Bool: &types.BoolQuery{Filter: slices.Clone(q.filters)}}
	}
}

var _ pagination.Query[struct{}] = (*Query[struct{}])(nil)
