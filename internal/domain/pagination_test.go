package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		want         PaginationParams
		wantOffset   int
		wantPagesFor int
	}{
		{name: "defaults", want: PaginationParams{Page: 1, PageSize: 20}, wantOffset: 0, wantPagesFor: 3},
		{name: "third page of five", page: 3, size: 5, want: PaginationParams{Page: 3, PageSize: 5}, wantOffset: 10, wantPagesFor: 9},
		{name: "oversized page", page: 2, size: 500, want: PaginationParams{Page: 2, PageSize: 100}, wantOffset: 100, wantPagesFor: 1},
		{name: "negative values", page: -1, size: -1, want: PaginationParams{Page: 1, PageSize: 20}, wantOffset: 0, wantPagesFor: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationParams(tt.page, tt.size)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.wantPagesFor, p.TotalPages(41))
		})
	}

	assert.Zero(t, PaginationParams{Page: 1}.TotalPages(41))
}
