package pagination_test

import (
	"testing"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagingRequest_Validate(t *testing.T) {
	zero, negative, ten := 0, -5, 10
	tests := []struct {
		name    string
		req     pagination.PagingRequest
		wantErr bool
		field   string
	}{
		{name: "defaults", req: pagination.DefaultPagingRequest()},
		{name: "explicit size", req: pagination.PagingRequest{PageSize: &ten, PageNumber: 4}},
		{name: "zero size", req: pagination.PagingRequest{PageSize: &zero}, wantErr: true, field: "pageSize"},
		{name: "negative size", req: pagination.PagingRequest{PageSize: &negative}, wantErr: true, field: "pageSize"},
		{name: "negative page", req: pagination.PagingRequest{PageNumber: -1}, wantErr: true, field: "pageNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ae, ok := apperr.IsInvalidArgument(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ae.Argument)
		})
	}
}

func TestSortablePagingRequest_ValidateEmbedded(t *testing.T) {
	req := pagination.SortablePagingRequest{
		PagingRequest: pagination.PagingRequest{PageNumber: -2},
		SortProperty:  "title",
	}

	err := req.Validate()

	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestPagingRequest_EffectivePageSize(t *testing.T) {
	assert.Equal(t, pagination.UnboundedPageSize, pagination.DefaultPagingRequest().EffectivePageSize())
	assert.Equal(t, 7, pagination.NewPagingRequest(7, 0).EffectivePageSize())
}
