// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/pkg/pagination"
)

// # Query Engine

/*
Search filters, sorts and paginates titles.

Description: The pipeline runs in a fixed order: text, genres, tags, status,
language, rating floor, page-count bounds, stable sort, paginate. It is pure:
the input slice is never reordered and the same input always yields the same
page, so paging through the results is a partition of the filtered list.

Parameters:
  - titles: []*Title (Candidate titles, in source order)
  - filter: Filter (Predicates and ordering; defaults applied here)
  - page: int (1-based; out of range yields an empty page)
  - pageSize: int (Must be positive)

Returns:
  - Page[*Title]: The requested window and the total after filtering
  - error: INVALID_FILTER for a malformed filter or non-positive page size
*/
func Search(titles []*Title, filter Filter, page, pageSize int) (Page[*Title], error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return Page[*Title]{}, err
	}
	if pageSize <= 0 {
		return Page[*Title]{}, apperr.InvalidFilter(apperr.FieldError{Field: FieldLimit, Message: "Must be greater than 0"})
	}

	// Casers and collators keep internal buffers, so each call gets its own matcher.
	m := newMatcher(filter)
	matched := make([]*Title, 0, len(titles))
	for _, title := range titles {
		if m.keep(title) {
			matched = append(matched, title)
		}
	}

	slices.SortStableFunc(matched, comparator(filter))

	start, end := pagination.Window(page, pageSize, len(matched))
	meta := pagination.NewMeta(page, pageSize, len(matched))

	return Page[*Title]{
		Items:    matched[start:end],
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
		HasMore:  meta.HasMore,
	}, nil
}

// # Predicates

type matcher struct {
	filter Filter
	fold   cases.Caser
	query  string
	genres []string
	tags   []string
}

func newMatcher(filter Filter) *matcher {
	m := &matcher{filter: filter, fold: cases.Fold()}
	m.query = m.fold.String(filter.Query)
	for _, genre := range filter.Genres {
		m.genres = append(m.genres, m.fold.String(genre))
	}
	for _, tag := range filter.Tags {
		m.tags = append(m.tags, m.fold.String(tag))
	}
	return m
}

// keep applies every stage up to (not including) the sort.
func (m *matcher) keep(title *Title) bool {
	return m.text(title) &&
		m.allGenres(title) &&
		m.allTags(title) &&
		(m.filter.Status == "" || title.Status == m.filter.Status) &&
		(m.filter.Language == "" || title.Language == m.filter.Language) &&
		title.Rating >= m.filter.MinRating &&
		(m.filter.MinPages <= 0 || title.TotalPages >= m.filter.MinPages) &&
		(m.filter.MaxPages <= 0 || title.TotalPages <= m.filter.MaxPages)
}

// 1. Text: title, author or any tag contains the query.
func (m *matcher) text(title *Title) bool {
	if m.query == "" {
		return true
	}
	if strings.Contains(m.fold.String(title.Title), m.query) ||
		strings.Contains(m.fold.String(title.Author), m.query) {
		return true
	}
	return slices.ContainsFunc(title.Tags, func(tag string) bool {
		return strings.Contains(m.fold.String(tag), m.query)
	})
}

// 2. Genres: every requested genre equals one of the title's genres.
func (m *matcher) allGenres(title *Title) bool {
	for _, want := range m.genres {
		if !slices.ContainsFunc(title.Genres, func(genre string) bool { return m.fold.String(genre) == want }) {
			return false
		}
	}
	return true
}

// 3. Tags: every requested tag is a substring of one of the title's tags.
func (m *matcher) allTags(title *Title) bool {
	for _, want := range m.tags {
		if !slices.ContainsFunc(title.Tags, func(tag string) bool { return strings.Contains(m.fold.String(tag), want) }) {
			return false
		}
	}
	return true
}

// # Ordering

func comparator(filter Filter) func(a, b *Title) int {
	var compare func(a, b *Title) int

	switch filter.SortBy {
	case SortTitle:
		collator := collate.New(language.Und)
		compare = func(a, b *Title) int { return collator.CompareString(a.Title, b.Title) }
	case SortRating:
		compare = func(a, b *Title) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortYear:
		compare = func(a, b *Title) int { return cmp.Compare(a.Year, b.Year) }
	case SortUpdated:
		compare = func(a, b *Title) int { return a.LastUpdated.Compare(b.LastUpdated) }
	case SortPages:
		compare = func(a, b *Title) int { return cmp.Compare(a.TotalPages, b.TotalPages) }
	default:
		compare = func(a, b *Title) int { return cmp.Compare(a.Popularity, b.Popularity) }
	}

	if filter.SortOrder == SortDesc {
		return func(a, b *Title) int { return compare(b, a) }
	}
	return compare
}
