// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/pagination"
)

/*
TestWindow covers in-range, partial and out-of-range pages.
*/
func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int
		wantStart, wantEnd int
	}{
		{"first_page", 1, 2, 5, 0, 2},
		{"last_partial", 3, 2, 5, 4, 5},
		{"past_end", 4, 2, 5, 5, 5},
		{"page_zero", 0, 2, 5, 0, 0},
		{"empty_collection", 1, 10, 0, 0, 0},
		{"huge_page", 1 << 62, 4, 6, 6, 6},
		{"max_page", math.MaxInt, 2, 5, 5, 5},
		{"huge_limit", 1, math.MaxInt, 5, 0, 5},
		{"huge_limit_second_page", 2, math.MaxInt, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pagination.Window(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

/*
TestNewMeta_HasMore checks the has-more flag at the edges of the collection.
*/
func TestNewMeta_HasMore(t *testing.T) {
	assert.True(t, pagination.NewMeta(1, 2, 5).HasMore)
	assert.False(t, pagination.NewMeta(3, 2, 5).HasMore)
	assert.False(t, pagination.NewMeta(2, 2, 4).HasMore)
	assert.False(t, pagination.NewMeta(0, 2, 5).HasMore)
	assert.Equal(t, 3, pagination.NewMeta(1, 2, 5).TotalPages)

	huge := pagination.NewMeta(1<<62, 4, 6)
	assert.False(t, huge.HasMore)
	assert.Equal(t, 2, huge.TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, math.MaxInt, 5).TotalPages)
}

/*
TestFromRequest_Clamping verifies lenient parsing of list parameters.
*/
func TestFromRequest_Clamping(t *testing.T) {
	params := pagination.FromRequest(httptest.NewRequest("GET", "/?page=-3&limit=500", nil))
	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.MaxLimit, params.Limit)

	params = pagination.FromRequest(httptest.NewRequest("GET", "/?page=2&limit=abc", nil))
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}
