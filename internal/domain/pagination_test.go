package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		in           PaginationParams
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", PaginationParams{Page: 3, PageSize: 50}, 3, 50},
		{"zero falls back to defaults", PaginationParams{}, DefaultPage, DefaultPageSize},
		{"negative falls back to defaults", PaginationParams{Page: -1, PageSize: -5}, DefaultPage, DefaultPageSize},
		{"oversized page size is capped", PaginationParams{Page: 1, PageSize: 500}, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 20, PaginationParams{Page: 2, PageSize: 20}.Offset())
	// Unnormalized input never yields a negative offset.
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.Offset())
}
