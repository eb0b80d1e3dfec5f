// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"slices"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/telemetry"
	"github.com/taibuivan/yomira-reader/pkg/slice"
)

// PopularGenreLimit caps the popular-genre facet.
const PopularGenreLimit = 12

// # Service Layer

// Service layers the query engine and the facet lists over a [Source].
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	source  Source
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewService constructs a new [Service]. metrics may be nil.
func NewService(source Source, metrics *telemetry.Metrics, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		metrics: metrics,
		logger:  logger,
	}
}

// # Discovery

/*
Search runs the query engine over every title of the source.

Parameters:
  - context: context.Context
  - filter: Filter (Predicates and ordering)
  - page: int (1-based)
  - pageSize: int (Items per page)

Returns:
  - Page[*Title]: The requested window
  - error: INVALID_FILTER, or REQUEST_FAILED when the source rejects the call
*/
func (service *Service) Search(context context.Context, filter Filter, page, pageSize int) (Page[*Title], error) {
	filter = filter.Normalize()

	titles, err := service.listTitles(context)
	if err != nil {
		service.metrics.ObserveSearch(string(filter.SortBy), 0, err)
		return Page[*Title]{}, err
	}

	result, err := Search(titles, filter, page, pageSize)
	service.metrics.ObserveSearch(string(filter.SortBy), result.Total, err)
	if err != nil {
		return Page[*Title]{}, err
	}

	service.logger.DebugContext(context, "catalog_search_completed",
		slog.String("query", filter.Query),
		slog.Any("genres", filter.Genres),
		slog.String("sort", string(filter.SortBy)),
		slog.String("dir", string(filter.SortOrder)),
		slog.Int("page", page),
		slog.Int("total", result.Total),
	)

	return result, nil
}

// Trending returns the most popular titles.
func (service *Service) Trending(context context.Context, limit int) ([]*Title, error) {
	result, err := service.Search(context, Filter{SortBy: SortPopularity, SortOrder: SortDesc}, 1, limit)
	return result.Items, err
}

// RecentlyUpdated returns the most recently updated titles.
func (service *Service) RecentlyUpdated(context context.Context, limit int) ([]*Title, error) {
	result, err := service.Search(context, Filter{SortBy: SortUpdated, SortOrder: SortDesc}, 1, limit)
	return result.Items, err
}

// # Lookups

// GetTitle returns a single title or NotFound.
func (service *Service) GetTitle(context context.Context, id string) (*Title, error) {
	title, err := service.source.GetTitle(context, id)
	return title, classify(err)
}

/*
ListChapters returns the ordered chapter list of a title.

Returns:
  - []*Chapter: Chapters ordered by number (possibly empty)
  - error: NotFound when the title does not exist
*/
func (service *Service) ListChapters(context context.Context, titleID string) ([]*Chapter, error) {
	chapters, err := service.source.ListChapters(context, titleID)
	if err != nil {
		return nil, classify(err)
	}
	return chapters, nil
}

// # Facets

// PopularGenres returns genres ordered by how many titles carry them, most
// frequent first, ties in first-appearance order, capped at [PopularGenreLimit].
func (service *Service) PopularGenres(context context.Context) ([]string, error) {
	titles, err := service.listTitles(context)
	if err != nil {
		return nil, err
	}

	var all []string
	for _, title := range titles {
		all = append(all, title.Genres...)
	}
	return nonNil(slice.RankByFrequency(all, PopularGenreLimit)), nil
}

// AvailableTags returns every distinct tag, sorted.
func (service *Service) AvailableTags(context context.Context) ([]string, error) {
	return service.distinct(context, func(title *Title) []string { return title.Tags })
}

// AvailableLanguages returns every distinct language code, sorted.
func (service *Service) AvailableLanguages(context context.Context) ([]string, error) {
	return service.distinct(context, func(title *Title) []string { return []string{title.Language} })
}

func (service *Service) distinct(context context.Context, values func(*Title) []string) ([]string, error) {
	titles, err := service.listTitles(context)
	if err != nil {
		return nil, err
	}

	var all []string
	for _, title := range titles {
		all = append(all, values(title)...)
	}

	result := slice.Filter(slice.Unique(all), func(v string) bool { return v != "" })
	slices.Sort(result)
	return nonNil(result), nil
}

func (service *Service) listTitles(context context.Context) ([]*Title, error) {
	titles, err := service.source.ListTitles(context)
	if err != nil {
		service.logger.WarnContext(context, "catalog_source_failed", slog.Any("error", err))
		return nil, classify(err)
	}
	return titles, nil
}

// classify keeps application errors and reports anything else as a rejected
// data source call, which the caller may retry.
func classify(err error) error {
	if err == nil || apperr.IsAppError(err) {
		return err
	}
	return apperr.RequestFailed(err)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
