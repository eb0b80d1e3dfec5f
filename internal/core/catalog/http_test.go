// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/pkg/pagination"
)

func newRouter(t *testing.T) http.Handler {
	handler := catalog.NewHandler(newService(t))

	router := chi.NewRouter()
	router.Mount("/titles", handler.Routes())
	handler.RegisterFacets(router)
	return router
}

/*
TestHandler_SearchTitles exercises query parsing and the paginated envelope.
*/
func TestHandler_SearchTitles(t *testing.T) {
	router := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/titles?genres=action&min_rating=4.5&sort=rating&dir=desc&limit=1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []catalog.Title `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.Len(t, body.Data, 1)
	assert.Equal(t, "A", body.Data[0].ID)
	assert.Equal(t, 2, body.Meta.Total)
	assert.True(t, body.Meta.HasMore)
}

/*
TestHandler_SearchHugePage answers past-the-end pages with an empty listing instead of a 500.
*/
func TestHandler_SearchHugePage(t *testing.T) {
	router := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/titles?page=4611686018427387904&limit=4", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []catalog.Title `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Empty(t, body.Data)
	assert.Equal(t, 6, body.Meta.Total)
	assert.Equal(t, 1<<62, body.Meta.Page)
	assert.False(t, body.Meta.HasMore)
}

/*
TestHandler_InvalidFilter returns 400 with field details.
*/
func TestHandler_InvalidFilter(t *testing.T) {
	router := newRouter(t)

	for _, rawQuery := range []string{"min_rating=abc", "limit=0", "sort=random", "limit=500", "max_pages=ten"} {
		t.Run(rawQuery, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/titles?"+rawQuery, nil))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, apperr.CodeInvalidFilter, body.Code)
			assert.NotEmpty(t, body.Details)
		})
	}
}

/*
TestHandler_Lookups covers title, chapters and facet routes.
*/
func TestHandler_Lookups(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/titles/A", http.StatusOK},
		{"/titles/A/chapters", http.StatusOK},
		{"/titles/nope", http.StatusNotFound},
		{"/titles/nope/chapters", http.StatusNotFound},
		{"/titles/trending?limit=3", http.StatusOK},
		{"/titles/recent", http.StatusOK},
		{"/genres", http.StatusOK},
		{"/tags", http.StatusOK},
		{"/languages", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestParseSearchQuery accepts repeated and comma-separated list parameters.
*/
func TestParseSearchQuery(t *testing.T) {
	values, err := url.ParseQuery("q=dragon&genres=Action,Fantasy&genre=Drama&tags=mag&status=ongoing&page=2&limit=5&min_pages=100")
	require.NoError(t, err)

	filter, page, limit, err := catalog.ParseSearchQuery(values)
	require.NoError(t, err)

	assert.Equal(t, "dragon", filter.Query)
	assert.Equal(t, []string{"Action", "Fantasy", "Drama"}, filter.Genres)
	assert.Equal(t, []string{"mag"}, filter.Tags)
	assert.Equal(t, catalog.StatusOngoing, filter.Status)
	assert.Equal(t, 100, filter.MinPages)
	assert.Equal(t, 2, page)
	assert.Equal(t, 5, limit)

	_, page, limit, err = catalog.ParseSearchQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultPage, page)
	assert.Equal(t, pagination.DefaultLimit, limit)
}
