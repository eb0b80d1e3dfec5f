// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the title and chapter model of the reader and the
query engine that searches it.

Core Responsibility:

  - Model: Titles (one manga work) own an ordered list of Chapters, looked up by title id.
  - Discovery: A deterministic search pipeline (filter, stable sort, paginate) over titles.
  - Sources: Titles come from a [Source]; an in-memory seed and PostgreSQL are provided.

Titles are read-only once ingested. Ranking inputs (rating, popularity) are
supplied by the ingestion pipeline and never computed here.
*/
package catalog

import (
	"fmt"
	"time"
)

// # Domain Enums

// Status represents the publication status of a title.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates the publication is paused indefinitely.
	StatusHiatus Status = "hiatus"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus:
		return true
	}
	return false
}

// Rating bounds shared by titles and the rating floor of a [Filter].
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// # Core Entities

// Title is a single manga series or work in the catalogue.
type Title struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Genres        []string  `json:"genres"` // Display order preserved, set semantics for filtering
	Tags          []string  `json:"tags"`
	Status        Status    `json:"status"`
	Rating        float64   `json:"rating"`
	Year          int       `json:"year"`
	TotalChapters int       `json:"total_chapters"`
	TotalPages    int       `json:"total_pages"`
	LastUpdated   time.Time `json:"last_updated"`
	Popularity    int       `json:"popularity"`
	Language      string    `json:"language"`
	Type          string    `json:"type"`
	CoverImage    string    `json:"cover_image"`
	GalleryID     string    `json:"gallery_id,omitempty"`
}

// Validate checks the invariants every stored title must satisfy.
func (title *Title) Validate() error {
	switch {
	case title.ID == "":
		return fmt.Errorf("catalog: title has no id")
	case title.TotalChapters < 1:
		return fmt.Errorf("catalog: title %s has %d chapters, want at least 1", title.ID, title.TotalChapters)
	case title.Rating < MinRating || title.Rating > MaxRating:
		return fmt.Errorf("catalog: title %s rating %.2f outside [%g, %g]", title.ID, title.Rating, MinRating, MaxRating)
	case title.Popularity < 0:
		return fmt.Errorf("catalog: title %s has negative popularity", title.ID)
	case !title.Status.IsValid():
		return fmt.Errorf("catalog: title %s has unknown status %q", title.ID, title.Status)
	}
	return nil
}

// Chapter is an ordered subdivision of a title's pages.
// Numbers are 1-based and contiguous within a title.
type Chapter struct {
	ID          string    `json:"id"`
	MangaID     string    `json:"manga_id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Pages       []string  `json:"pages"`
	ReleaseDate time.Time `json:"release_date"`
}

// PageCount returns the number of pages in the chapter.
func (chapter *Chapter) PageCount() int {
	return len(chapter.Pages)
}

// # Results

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// # Field Identifiers

// Query field names used in validation details and HTTP parameters.
const (
	FieldQuery     = "q"
	FieldGenres    = "genres"
	FieldTags      = "tags"
	FieldStatus    = "status"
	FieldLanguage  = "language"
	FieldMinRating = "min_rating"
	FieldMinPages  = "min_pages"
	FieldMaxPages  = "max_pages"
	FieldSort      = "sort"
	FieldDir       = "dir"
	FieldPage      = "page"
	FieldLimit     = "limit"
)
