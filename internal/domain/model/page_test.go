package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_PaginationLaw(t *testing.T) {
	// For a merged set of size T, limit L, page P within range, the page has
	// min(L, T-(P-1)*L) items and totalPages = ceil(T/L).
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		page, limit    int
		wantLen        int
		wantTotalPages int
	}{
		{1, 10, 10, 3},
		{2, 10, 10, 3},
		{3, 10, 3, 3},
		{1, 23, 23, 1},
		{1, 25, 23, 1},
		{4, 10, 0, 3}, // out of range
	}

	for _, tt := range tests {
		p := NewPage(items, tt.page, tt.limit)
		assert.Len(t, p.Data, tt.wantLen, "page=%d limit=%d", tt.page, tt.limit)
		assert.Equal(t, 23, p.Total)
		assert.Equal(t, tt.wantTotalPages, p.TotalPages, "page=%d limit=%d", tt.page, tt.limit)
		assert.Equal(t, tt.limit, p.PageSize)
	}
}

func TestNewPage_Empty(t *testing.T) {
	p := NewPage[int](nil, 1, 20)

	assert.NotNil(t, p.Data, "data must serialize as [] not null")
	assert.Empty(t, p.Data)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}

func TestNewPage_ClampsInvalidParams(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 0, -5)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PageSize)
	assert.Len(t, p.Data, 1)
}

func TestNewPage_PreservesOrder(t *testing.T) {
	p := NewPage([]string{"a", "b", "c", "d"}, 2, 2)

	assert.Equal(t, []string{"c", "d"}, p.Data)
}
