package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest_Normalizes(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize, 0},
		{"negative page", -3, 20, 1, 20, 0},
		{"clamped size", 2, 500, 2, MaxPageSize, 100},
		{"exact max", 3, 100, 3, 100, 200},
		{"negative size", 1, -1, 1, DefaultPageSize, 0},
		{"huge page", math.MaxInt/10 + 2, 10, MaxPage, 10, (MaxPage - 1) * 10},
		{"huge page at max size", math.MaxInt, 500, MaxPage, MaxPageSize, (MaxPage - 1) * MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewPageRequest(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantSize, req.Limit())
			assert.Equal(t, tt.wantOffset, req.Offset())
			assert.GreaterOrEqual(t, req.Offset(), 0)
		})
	}
}

func TestNewPage_Meta(t *testing.T) {
	page := newPage([]int{1, 2}, NewPageRequest(2, 10), 25)
	assert.Equal(t, PageMeta{
		CurrentPage:     2,
		TotalPages:      3,
		TotalItems:      25,
		ItemsPerPage:    10,
		HasNextPage:     true,
		HasPreviousPage: true,
	}, page.Meta)

	empty := newPage[int](nil, NewPageRequest(1, 10), 0)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Meta.TotalPages)
	assert.False(t, empty.Meta.HasNextPage)
	assert.False(t, empty.Meta.HasPreviousPage)
}
