package pagination

import (
	"errors"
	"reflect"
	"strings"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// PagingRequest asks for one page of results.
// Page numbers are zero-based; a nil PageSize means the whole result set is one page.
type PagingRequest struct {
	PageSize   *int `json:"pageSize,omitempty" validate:"omitempty,gte=1"`
	PageNumber int  `json:"pageNumber" validate:"gte=0"`
}

// NewPagingRequest builds a request with an explicit page size.
func NewPagingRequest(pageSize, pageNumber int) PagingRequest {
	return PagingRequest{PageSize: &pageSize, PageNumber: pageNumber}
}

// DefaultPagingRequest returns an unbounded request for the first page.
func DefaultPagingRequest() PagingRequest {
	return PagingRequest{PageNumber: DefaultPageNumber}
}

// EffectivePageSize resolves a missing page size to UnboundedPageSize.
func (r PagingRequest) EffectivePageSize() int {
	if r.PageSize == nil {
		return UnboundedPageSize
	}
	return *r.PageSize
}

func (r PagingRequest) Validate() error {
	return validateStruct(r)
}

// SortablePagingRequest is a PagingRequest that also orders the results by a named property.
type SortablePagingRequest struct {
	PagingRequest
	SortProperty string `json:"sortProperty,omitempty"`
	Descending   bool   `json:"descending,omitempty"`
}

func NewSortablePagingRequest(pageSize, pageNumber int, sortProperty string, descending bool) SortablePagingRequest {
	return SortablePagingRequest{
		PagingRequest: NewPagingRequest(pageSize, pageNumber),
		SortProperty:  sortProperty,
		Descending:    descending,
	}
}

func (r SortablePagingRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.NewArgumentWrap(fe.Field(), fe.Value(), "invalid paging request", err)
	}
	return apperr.NewArgumentWrap("request", s, "invalid paging request", err)
}
