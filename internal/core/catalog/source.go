// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// Source is the title/chapter data source the catalogue is layered on.
//
// Implementations return NotFound for unknown ids and RequestFailed when the
// backing store rejects a call. Returned titles must be treated as read-only.
type Source interface {
	GetTitle(context context.Context, id string) (*Title, error)
	ListChapters(context context.Context, titleID string) ([]*Chapter, error)
	ListTitles(context context.Context) ([]*Title, error)
}

// # In-Memory Source

// MemorySource serves a fixed catalogue held in memory. It is immutable after
// construction and therefore safe for concurrent readers.
type MemorySource struct {
	titles   []*Title
	byID     map[string]*Title
	chapters map[string][]*Chapter
}

// NewMemorySource builds a source from titles (in listing order) and their
// chapters keyed by title id. Every title must be valid and have an id that
// appears once.
func NewMemorySource(titles []*Title, chapters map[string][]*Chapter) (*MemorySource, error) {
	source := &MemorySource{
		titles:   make([]*Title, 0, len(titles)),
		byID:     make(map[string]*Title, len(titles)),
		chapters: make(map[string][]*Chapter, len(chapters)),
	}

	for _, title := range titles {
		if err := title.Validate(); err != nil {
			return nil, err
		}
		if _, dup := source.byID[title.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate title id %s", title.ID)
		}
		source.titles = append(source.titles, title)
		source.byID[title.ID] = title
		source.chapters[title.ID] = chapters[title.ID]
	}

	return source, nil
}

// GetTitle implements [Source].
func (source *MemorySource) GetTitle(_ context.Context, id string) (*Title, error) {
	title, ok := source.byID[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return title, nil
}

// ListChapters implements [Source]. A known title without chapters yields an
// empty list, not an error.
func (source *MemorySource) ListChapters(_ context.Context, titleID string) ([]*Chapter, error) {
	chapters, ok := source.chapters[titleID]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return chapters, nil
}

// ListTitles implements [Source].
func (source *MemorySource) ListTitles(_ context.Context) ([]*Title, error) {
	return source.titles, nil
}

// Len returns the number of titles held by the source.
func (source *MemorySource) Len() int {
	return len(source.titles)
}
