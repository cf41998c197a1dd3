package pagination

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
)

// Sort orders results by a named property of the paged type.
type Sort struct {
	Property   string
	Descending bool
}

// Specification describes how a query is sorted and sliced into a page.
// It is a value: every With/Then method returns a modified copy.
type Specification struct {
	PageSize   int
	PageNumber int
	Sorts      []Sort
}

// FromPaging builds an unsorted specification from req.
func FromPaging(req *PagingRequest) (Specification, error) {
	if req == nil {
		return Specification{}, apperr.NewArgument("request", nil, "paging request is required")
	}
	if err := req.Validate(); err != nil {
		return Specification{}, err
	}
	return Specification{}.WithPaging(req.PageSize, req.PageNumber), nil
}

// FromSortable builds a specification that also sorts by req.SortProperty when it is set.
// The property is not checked here; resolution happens when the specification is applied.
func FromSortable(req *SortablePagingRequest) (Specification, error) {
	if req == nil {
		return Specification{}, apperr.NewArgument("request", nil, "sortable paging request is required")
	}
	if err := req.Validate(); err != nil {
		return Specification{}, err
	}
	return Specification{}.
		WithPaging(req.PageSize, req.PageNumber).
		ThenBy(req.SortProperty, req.Descending), nil
}

// WithPaging sets the page window. A nil pageSize means UnboundedPageSize.
func (s Specification) WithPaging(pageSize *int, pageNumber int) Specification {
	s.PageSize = UnboundedPageSize
	if pageSize != nil {
		s.PageSize = *pageSize
	}
	s.PageNumber = pageNumber
	return s
}

// ThenBy appends a sort. Blank property names are ignored.
func (s Specification) ThenBy(property string, descending bool) Specification {
	if strings.TrimSpace(property) == "" {
		return s
	}
	s.Sorts = append(slices.Clip(s.Sorts), Sort{Property: property, Descending: descending})
	return s
}

func (s Specification) pageSize() int {
	if s.PageSize <= 0 {
		return UnboundedPageSize
	}
	return s.PageSize
}

// Offset is the number of items skipped before the page starts.
func (s Specification) Offset() int {
	return mulSaturating(max(s.PageNumber, 0), s.pageSize())
}

// TotalPages returns max(1, ceil(totalRecords / PageSize)).
func (s Specification) TotalPages(totalRecords int) int {
	size := s.pageSize()
	pages := totalRecords / size
	if totalRecords%size != 0 {
		pages++
	}
	return max(pages, 1)
}

// Normalize returns a copy whose page number is reset to 1 when it lies past the last page.
func (s Specification) Normalize(totalRecords int) Specification {
	if s.PageNumber > s.TotalPages(totalRecords) {
		s.PageNumber = 1
	}
	return s
}

// ResolveSorts resolves every sort of the specification against T.
func ResolveSorts[T any](sorts []Sort) ([]SortKey, error) {
	keys := make([]SortKey, 0, len(sorts))
	for _, s := range sorts {
		key, err := ResolveSortKey[T](s.Property)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ApplySorting orders q by the resolved keys, in order. No sorts leaves q untouched.
func ApplySorting[T any](q Query[T], sorts []Sort) (Query[T], error) {
	keys, err := ResolveSorts[T](sorts)
	if err != nil {
		return nil, err
	}
	return orderBy(q, keys, sorts), nil
}

func orderBy[T any](q Query[T], keys []SortKey, sorts []Sort) Query[T] {
	for i, key := range keys {
		q = q.OrderBy(key, sorts[i].Descending)
	}
	return q
}

// ApplyPaging restricts q to the page described by s.
func ApplyPaging[T any](q Query[T], s Specification) Query[T] {
	return q.Skip(s.Offset()).Take(s.pageSize())
}
