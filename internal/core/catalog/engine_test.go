// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

/*
TestSearch_GenreAndRatingByRatingDesc runs the canonical Action / 4.5+ / rating desc query.
*/
func TestSearch_GenreAndRatingByRatingDesc(t *testing.T) {
	filter := catalog.Filter{
		Genres:    []string{"Action"},
		MinRating: 4.5,
		SortBy:    catalog.SortRating,
		SortOrder: catalog.SortDesc,
	}

	result, err := catalog.Search(fixture(), filter, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, ids(result.Items))
	assert.Equal(t, 2, result.Total)
	assert.False(t, result.HasMore)
}

/*
TestSearch_NoFalsePositives checks that every returned title satisfies every active predicate.
*/
func TestSearch_NoFalsePositives(t *testing.T) {
	filters := map[string]catalog.Filter{
		"text_in_tag":      {Query: "DRAGON"},
		"text_in_author":   {Query: "sato"},
		"genres_all":       {Genres: []string{"action", "sci-fi"}},
		"tag_substring":    {Tags: []string{"pirat"}},
		"status":           {Status: catalog.StatusOngoing},
		"language":         {Language: "english"},
		"rating_floor":     {MinRating: 4.4},
		"page_bounds":      {MinPages: 150, MaxPages: 200},
		"combined":         {Genres: []string{"Action"}, Language: "japanese", MinPages: 200},
		"matches_nothing":  {Genres: []string{"Horror"}},
		"only_lower_bound": {MinPages: 200},
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			result, err := catalog.Search(fixture(), filter, 1, 100)
			require.NoError(t, err)

			for _, title := range result.Items {
				assert.True(t, satisfies(title, filter), "title %s should not match %+v", title.ID, filter)
			}

			// And nothing that satisfies the filter was dropped
			want := 0
			for _, title := range fixture() {
				if satisfies(title, filter) {
					want++
				}
			}
			assert.Equal(t, want, result.Total)
		})
	}
}

/*
TestSearch_StableSort ensures equal keys keep their input order in both directions.
*/
func TestSearch_StableSort(t *testing.T) {
	for _, dir := range []catalog.SortOrder{catalog.SortAsc, catalog.SortDesc} {
		result, err := catalog.Search(fixture(), catalog.Filter{SortBy: catalog.SortRating, SortOrder: dir}, 1, 100)
		require.NoError(t, err)

		order := ids(result.Items)
		assert.Less(t, slices.Index(order, "D"), slices.Index(order, "E"), "dir=%s", dir)
	}

	// Popularity ties too
	result, err := catalog.Search(fixture(), catalog.Filter{}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "F", "B", "C", "D", "E"}, ids(result.Items))
}

/*
TestSearch_Deterministic verifies repeated calls return identical ordering and leave the input untouched.
*/
func TestSearch_Deterministic(t *testing.T) {
	titles := fixture()
	filter := catalog.Filter{SortBy: catalog.SortYear, SortOrder: catalog.SortAsc}

	first, err := catalog.Search(titles, filter, 1, 100)
	require.NoError(t, err)
	second, err := catalog.Search(titles, filter, 1, 100)
	require.NoError(t, err)

	assert.Equal(t, ids(first.Items), ids(second.Items))
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, ids(titles))
}

/*
TestSearch_PaginationPartition concatenates every page and compares against the full list.
*/
func TestSearch_PaginationPartition(t *testing.T) {
	filter := catalog.Filter{SortBy: catalog.SortPages, SortOrder: catalog.SortAsc}

	full, err := catalog.Search(fixture(), filter, 1, 100)
	require.NoError(t, err)

	for pageSize := 1; pageSize <= 7; pageSize++ {
		var collected []string
		pages := (full.Total + pageSize - 1) / pageSize

		for page := 1; page <= pages; page++ {
			result, err := catalog.Search(fixture(), filter, page, pageSize)
			require.NoError(t, err)

			collected = append(collected, ids(result.Items)...)
			assert.Equal(t, page < pages, result.HasMore, "pageSize=%d page=%d", pageSize, page)
			assert.Equal(t, full.Total, result.Total)
		}

		assert.Equal(t, ids(full.Items), collected, "pageSize=%d", pageSize)
	}
}

/*
TestSearch_OutOfRangePage returns an empty window with the correct total.
*/
func TestSearch_OutOfRangePage(t *testing.T) {
	for _, page := range []int{0, -1, 4, 99} {
		result, err := catalog.Search(fixture(), catalog.Filter{}, page, 2)
		require.NoError(t, err)

		assert.Empty(t, result.Items, "page=%d", page)
		assert.NotNil(t, result.Items)
		assert.Equal(t, 6, result.Total)
		assert.False(t, result.HasMore)
	}
}

/*
TestSearch_HugePage stays empty for pages whose offset does not fit in an int.
*/
func TestSearch_HugePage(t *testing.T) {
	for _, page := range []int{1 << 62, math.MaxInt} {
		result, err := catalog.Search(fixture(), catalog.Filter{}, page, 4)
		require.NoError(t, err)

		assert.Empty(t, result.Items, "page=%d", page)
		assert.Equal(t, 6, result.Total)
		assert.Equal(t, page, result.Page)
		assert.False(t, result.HasMore)
	}

	result, err := catalog.Search(fixture(), catalog.Filter{}, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, result.Items, 6)
	assert.False(t, result.HasMore)
}

/*
TestSearch_InvalidFilter covers every rejected input.
*/
func TestSearch_InvalidFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   catalog.Filter
		pageSize int
		field    string
	}{
		{"zero_page_size", catalog.Filter{}, 0, catalog.FieldLimit},
		{"negative_page_size", catalog.Filter{}, -5, catalog.FieldLimit},
		{"unknown_sort", catalog.Filter{SortBy: "random"}, 10, catalog.FieldSort},
		{"unknown_dir", catalog.Filter{SortOrder: "sideways"}, 10, catalog.FieldDir},
		{"unknown_status", catalog.Filter{Status: "cancelled"}, 10, catalog.FieldStatus},
		{"rating_above_max", catalog.Filter{MinRating: 5.5}, 10, catalog.FieldMinRating},
		{"rating_negative", catalog.Filter{MinRating: -1}, 10, catalog.FieldMinRating},
		{"negative_min_pages", catalog.Filter{MinPages: -1}, 10, catalog.FieldMinPages},
		{"inverted_bounds", catalog.Filter{MinPages: 200, MaxPages: 100}, 10, catalog.FieldMaxPages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Search(fixture(), tt.filter, 1, tt.pageSize)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeInvalidFilter, appError.Code)
			require.NotEmpty(t, appError.Details)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestSearch_SortKeys checks each comparator, including locale-aware title ordering.
*/
func TestSearch_SortKeys(t *testing.T) {
	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{"title_asc", catalog.Filter{SortBy: catalog.SortTitle, SortOrder: catalog.SortAsc}, []string{"B", "C", "D", "E", "A", "F"}},
		{"updated_desc", catalog.Filter{SortBy: catalog.SortUpdated}, []string{"E", "B", "C", "A", "D", "F"}},
		{"pages_desc", catalog.Filter{SortBy: catalog.SortPages}, []string{"C", "A", "F", "B", "E", "D"}},
		{"year_desc", catalog.Filter{SortBy: catalog.SortYear}, []string{"B", "E", "A", "F", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := catalog.Search(fixture(), tt.filter, 1, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(result.Items))
		})
	}

	// Accented and lowercase titles sort alongside their base letters
	titles := []*catalog.Title{
		{ID: "z", Title: "Zeta"}, {ID: "e", Title: "Émile"}, {ID: "a", Title: "alpha"},
	}
	result, err := catalog.Search(titles, catalog.Filter{SortBy: catalog.SortTitle, SortOrder: catalog.SortAsc}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "e", "z"}, ids(result.Items))
}

// satisfies is an independent restatement of the filter predicates.
func satisfies(title *catalog.Title, filter catalog.Filter) bool {
	lower := strings.ToLower
	if q := lower(strings.TrimSpace(filter.Query)); q != "" {
		hit := strings.Contains(lower(title.Title), q) || strings.Contains(lower(title.Author), q)
		for _, tag := range title.Tags {
			hit = hit || strings.Contains(lower(tag), q)
		}
		if !hit {
			return false
		}
	}
	for _, genre := range filter.Genres {
		if !slices.ContainsFunc(title.Genres, func(g string) bool { return strings.EqualFold(g, genre) }) {
			return false
		}
	}
	for _, want := range filter.Tags {
		if !slices.ContainsFunc(title.Tags, func(tag string) bool { return strings.Contains(lower(tag), lower(want)) }) {
			return false
		}
	}
	if filter.Status != "" && title.Status != filter.Status {
		return false
	}
	if filter.Language != "" && title.Language != filter.Language {
		return false
	}
	if title.Rating < filter.MinRating {
		return false
	}
	if filter.MinPages > 0 && title.TotalPages < filter.MinPages {
		return false
	}
	if filter.MaxPages > 0 && title.TotalPages > filter.MaxPages {
		return false
	}
	return true
}
