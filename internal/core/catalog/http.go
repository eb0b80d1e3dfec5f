// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
	"github.com/taibuivan/yomira-reader/pkg/convert"
	"github.com/taibuivan/yomira-reader/pkg/pagination"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
	"github.com/taibuivan/yomira-reader/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the title endpoints, mounted at /titles.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.searchTitles)
	router.Get("/trending", handler.trending)
	router.Get("/recent", handler.recentlyUpdated)
	router.Get("/{id}", handler.getTitle)
	router.Get("/{id}/chapters", handler.listChapters)

	return router
}

// RegisterFacets adds the filter-building lists to router.
func (handler *Handler) RegisterFacets(router chi.Router) {
	router.Get("/genres", handler.popularGenres)
	router.Get("/tags", handler.availableTags)
	router.Get("/languages", handler.availableLanguages)
}

// # Title Endpoints

/*
GET /api/v1/titles.

Description: Searches the catalogue. Malformed values are rejected with
INVALID_FILTER rather than silently ignored.

Request:
  - q: string (Title, author or tag substring)
  - genres: []string (Comma separated or repeated; all required)
  - tags: []string (Comma separated or repeated; all required)
  - status: string (ongoing, completed, hiatus)
  - language: string
  - min_rating: float (0 to 5)
  - min_pages, max_pages: int (0 = unbounded)
  - sort: string (popularity, rating, updated, title, year, pages)
  - dir: string (asc, desc)
  - page: int (default 1)
  - limit: int (default 20, max 100)

Response:
  - 200: []Title: Paginated list with meta.has_more
  - 400: INVALID_FILTER
*/
func (handler *Handler) searchTitles(writer http.ResponseWriter, request *http.Request) {
	filter, page, limit, err := ParseSearchQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Search(request.Context(), filter, page, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(result.Page, result.PageSize, result.Total))
}

/*
GET /api/v1/titles/trending.

Request:
  - limit: int (default 20)
*/
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	titles, err := handler.service.Trending(request.Context(), pagination.FromRequest(request).Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, titles)
}

// GET /api/v1/titles/recent.
func (handler *Handler) recentlyUpdated(writer http.ResponseWriter, request *http.Request) {
	titles, err := handler.service.RecentlyUpdated(request.Context(), pagination.FromRequest(request).Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, titles)
}

// GET /api/v1/titles/{id}.
func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	title, err := handler.service.GetTitle(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// GET /api/v1/titles/{id}/chapters.
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.ListChapters(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

// # Facet Endpoints

func (handler *Handler) popularGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.PopularGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) availableTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.AvailableTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) availableLanguages(writer http.ResponseWriter, request *http.Request) {
	languages, err := handler.service.AvailableLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, languages)
}

// # Query Parsing

/*
ParseSearchQuery turns URL query values into a filter and a page request.

Description: Numbers that do not parse are reported as INVALID_FILTER with
one detail per field. Range checks are left to the query engine.

Returns:
  - Filter: The parsed filter (defaults not yet applied)
  - int: page (default 1)
  - int: limit (default [pagination.DefaultLimit], at most [pagination.MaxLimit])
  - error: INVALID_FILTER
*/
func ParseSearchQuery(values url.Values) (Filter, int, int, error) {
	var details []apperr.FieldError
	number := func(field string) int {
		v, err := convert.OptionalInt(values.Get(field))
		if err != nil {
			details = append(details, apperr.FieldError{Field: field, Message: "Must be an integer"})
		}
		return pointer.Fallback(v, 0)
	}

	filter := Filter{
		Query:     values.Get(FieldQuery),
		Genres:    append(query.Terms(values, FieldGenres), query.Terms(values, "genre")...),
		Tags:      append(query.Terms(values, FieldTags), query.Terms(values, "tag")...),
		Status:    Status(values.Get(FieldStatus)),
		Language:  values.Get(FieldLanguage),
		MinPages:  number(FieldMinPages),
		MaxPages:  number(FieldMaxPages),
		SortBy:    SortKey(values.Get(FieldSort)),
		SortOrder: SortOrder(values.Get(FieldDir)),
	}

	minRating, err := convert.OptionalFloat(values.Get(FieldMinRating))
	if err != nil {
		details = append(details, apperr.FieldError{Field: FieldMinRating, Message: "Must be a number"})
	}
	filter.MinRating = pointer.Fallback(minRating, 0)

	page := pagination.DefaultPage
	if values.Has(FieldPage) {
		page = number(FieldPage)
	}

	limit := pagination.DefaultLimit
	if values.Has(FieldLimit) {
		limit = number(FieldLimit)
	}
	if limit > pagination.MaxLimit {
		details = append(details, apperr.FieldError{Field: FieldLimit, Message: fmt.Sprintf("Must not exceed %d", pagination.MaxLimit)})
	}

	if len(details) > 0 {
		return Filter{}, 0, 0, apperr.InvalidFilter(details...)
	}
	return filter, page, limit, nil
}
