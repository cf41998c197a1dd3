// Package paginationtest holds a contract suite every pagination.Query backend must pass.
package paginationtest

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Item is the row type the contract is written against.
type Item struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Rank int    `json:"rank" db:"rank"`
}

// Fixture returns the rows every contract case starts from. IDs are unique, ranks are not.
func Fixture() []Item {
	return []Item{
		{ID: 1, Name: "delta", Rank: 2},
		{ID: 2, Name: "alpha", Rank: 1},
		{ID: 3, Name: "charlie", Rank: 3},
		{ID: 4, Name: "bravo", Rank: 2},
		{ID: 5, Name: "echo", Rank: 5},
	}
}

// QueryFactory returns a query over items. Implementations seed their backend as needed.
type QueryFactory func(t *testing.T, items []Item) pagination.Query[Item]

func RunQueryContract(t *testing.T, makeQuery QueryFactory) {
	t.Helper()
	ctx := context.Background()

	key := func(t *testing.T, name string) pagination.SortKey {
		t.Helper()
		k, err := pagination.ResolveSortKey[Item](name)
		require.NoError(t, err)
		return k
	}

	t.Run("count_all", func(t *testing.T) {
		q := makeQuery(t, Fixture())
		n, err := q.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("count_empty", func(t *testing.T) {
		q := makeQuery(t, nil)
		n, err := q.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("order_ascending", func(t *testing.T) {
		q := makeQuery(t, Fixture()).OrderBy(key(t, "name"), false)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 3, 1, 5}, ids(got))
	})

	t.Run("order_descending", func(t *testing.T) {
		q := makeQuery(t, Fixture()).OrderBy(key(t, "ID"), true)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(got))
	})

	t.Run("then_by", func(t *testing.T) {
		q := makeQuery(t, Fixture()).
			OrderBy(key(t, "rank"), false).
			OrderBy(key(t, "name"), true)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 4, 3, 5}, ids(got))
	})

	t.Run("skip_take", func(t *testing.T) {
		q := makeQuery(t, Fixture()).OrderBy(key(t, "id"), false).Skip(1).Take(2)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, ids(got))

		n, err := q.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("skip_past_end", func(t *testing.T) {
		q := makeQuery(t, Fixture()).Skip(10)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("take_unbounded", func(t *testing.T) {
		q := makeQuery(t, Fixture()).Take(pagination.UnboundedPageSize)
		got, err := q.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("build_sorted_page", func(t *testing.T) {
		req := pagination.NewSortablePagingRequest(2, 1, "id", true)
		page, err := pagination.NewSortedPage(ctx, makeQuery(t, Fixture()), &req)
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalRecords)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, []int{3, 2}, ids(page.Data))
	})

	t.Run("build_page_invalid_sort_property", func(t *testing.T) {
		req := pagination.NewSortablePagingRequest(2, 0, "missing", false)
		_, err := pagination.NewSortedPage(ctx, makeQuery(t, Fixture()), &req)
		assert.Error(t, err)
	})
}

func ids(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
