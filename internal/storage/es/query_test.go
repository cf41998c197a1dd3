package es

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination/paginationtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	SourceName string `json:"source_name"`
}

type doc struct {
	Title string `json:"title"`
	Meta  meta   `json:"meta"`
	Rank  int
}

func countOf(n int) func() (int, error) {
	return func() (int, error) { return n, nil }
}

func TestQuery_Span(t *testing.T) {
	base := From[paginationtest.Item](nil, "items")

	tests := []struct {
		name     string
		q        pagination.Query[paginationtest.Item]
		matches  int
		wantFrom int
		wantSize int
	}{
		{name: "open fits the window", q: base, matches: 42, wantFrom: 0, wantSize: 42},
		{name: "open with no matches", q: base, matches: 0, wantFrom: 0, wantSize: 0},
		{name: "skip take", q: base.Skip(20).Take(10), matches: 1_000_000, wantFrom: 20, wantSize: 10},
		{name: "take ending on the window edge", q: base.Skip(9_990).Take(10), matches: 1_000_000, wantFrom: 9_990, wantSize: 10},
		{name: "take crossing the window with few matches", q: base.Skip(9_995).Take(10), matches: 3, wantFrom: 9_995, wantSize: 3},
		{name: "unbounded take", q: base.Skip(5).Take(pagination.UnboundedPageSize), matches: 7, wantFrom: 5, wantSize: 7},
		{name: "empty take", q: base.Skip(50_000).Take(0), matches: 1_000_000, wantFrom: 0, wantSize: 0},
		{name: "offset past the window with no matches left", q: base.Skip(50_000).Take(10), matches: 0, wantFrom: 0, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, size, err := tt.q.(*Query[paginationtest.Item]).span(countOf(tt.matches))

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestQuery_SpanBeyondWindow(t *testing.T) {
	base := From[paginationtest.Item](nil, "items")

	tests := []struct {
		name         string
		q            pagination.Query[paginationtest.Item]
		matches      int
		wantArgument string
	}{
		{name: "offset at the window", q: base.Skip(MaxResultWindow).Take(10), matches: 10, wantArgument: "offset"},
		{name: "take crossing the window", q: base.Skip(9_995).Take(10), matches: 10, wantArgument: "pageSize"},
		{name: "open larger than the window", q: base, matches: MaxResultWindow + 1, wantArgument: "pageSize"},
		{name: "unbounded take larger than the window", q: base.Skip(1).Take(pagination.UnboundedPageSize), matches: MaxResultWindow, wantArgument: "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.q.(*Query[paginationtest.Item]).span(countOf(tt.matches))

			argErr, ok := apperr.IsInvalidArgument(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantArgument, argErr.Argument)
		})
	}
}

func TestQuery_SpanCountError(t *testing.T) {
	boom := errors.New("boom")

	_, _, err := From[paginationtest.Item](nil, "items").span(func() (int, error) { return 0, boom })

	assert.ErrorIs(t, err, boom)
}

func TestQuery_RequestSort(t *testing.T) {
	title, err := pagination.ResolveSortKey[doc]("title")
	require.NoError(t, err)
	source, err := pagination.ResolveSortKey[doc]("meta.sourceName")
	require.NoError(t, err)
	rank, err := pagination.ResolveSortKey[doc]("rank")
	require.NoError(t, err)

	q := From[doc](nil, "docs").OrderBy(source, true).OrderBy(title, false).OrderBy(rank, false)
	req := q.(*Query[doc]).searchRequest(0, 10)
	require.Len(t, req.Sort, 3)

	body, err := json.Marshal(req.Sort)
	require.NoError(t, err)
	s := string(body)
	assert.Contains(t, s, `"meta.source_name"`)
	assert.Contains(t, s, `"title"`)
	assert.Contains(t, s, `"Rank"`)
	assert.Contains(t, s, `"desc"`)
	assert.Contains(t, s, `"_last"`)
}

func TestQuery_FilterComposition(t *testing.T) {
	base := From[doc](nil, "docs")
	assert.NotNil(t, base.query().MatchAll)

	one := base.Filter(termInsensitive("title", "go"))
	assert.NotNil(t, one.query().Term)

	two := one.Filter(termInsensitive("Rank", "1")).Filter(nil)
	require.NotNil(t, two.query().Bool)
	assert.Len(t, two.query().Bool.Filter, 2)

	assert.Len(t, one.filters, 1)
	assert.Empty(t, base.filters)
}
