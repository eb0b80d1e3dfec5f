// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"math"
	"strings"

	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// SortKey selects the comparator of the sort stage.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortUpdated    SortKey = "updated"
	SortTitle      SortKey = "title"
	SortYear       SortKey = "year"
	SortPages      SortKey = "pages"
)

// SortOrder is the direction of the sort stage.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter is the set of predicates and ordering of a catalogue query.
//
// Zero values mean "not set": an empty Query matches everything, a zero
// MinPages or MaxPages is unbounded, and an empty sort defaults to
// popularity, descending. Any combination is legal, including one that
// matches nothing.
type Filter struct {
	Query     string    `json:"q,omitempty"`
	Genres    []string  `json:"genres,omitempty"` // every genre required, case-insensitive exact
	Tags      []string  `json:"tags,omitempty"`   // every tag required, case-insensitive substring
	Status    Status    `json:"status,omitempty"`
	Language  string    `json:"language,omitempty"`
	MinRating float64   `json:"min_rating,omitempty"`
	MinPages  int       `json:"min_pages,omitempty"`
	MaxPages  int       `json:"max_pages,omitempty"`
	SortBy    SortKey   `json:"sort,omitempty"`
	SortOrder SortOrder `json:"dir,omitempty"`
}

// Normalize returns a copy of the filter with defaults applied and the
// free-text query trimmed.
func (filter Filter) Normalize() Filter {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.SortBy == "" {
		filter.SortBy = SortPopularity
	}
	if filter.SortOrder == "" {
		filter.SortOrder = SortDesc
	}
	return filter
}

// Validate reports malformed values as an INVALID_FILTER error listing every
// offending field. It expects a normalized filter.
func (filter Filter) Validate() error {
	validator := &validate.Validator{}

	validator.OneOf(FieldSort, string(filter.SortBy),
		string(SortPopularity), string(SortRating), string(SortUpdated),
		string(SortTitle), string(SortYear), string(SortPages),
	)
	validator.OneOf(FieldDir, string(filter.SortOrder), string(SortAsc), string(SortDesc))

	if filter.Status != "" {
		validator.OneOf(FieldStatus, string(filter.Status),
			string(StatusOngoing), string(StatusCompleted), string(StatusHiatus))
	}

	validator.FloatRange(FieldMinRating, filter.MinRating, MinRating, MaxRating)
	validator.Custom(FieldMinRating, math.IsNaN(filter.MinRating), "Must be a number")
	validator.Custom(FieldMinPages, filter.MinPages < 0, "Must not be negative")
	validator.Custom(FieldMaxPages, filter.MaxPages < 0, "Must not be negative")
	validator.Custom(FieldMaxPages, filter.MinPages > 0 && filter.MaxPages > 0 && filter.MaxPages < filter.MinPages,
		"Must not be lower than min_pages")

	return validator.FilterErr()
}
