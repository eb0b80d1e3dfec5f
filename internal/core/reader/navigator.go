// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// Navigator owns the position axis over an ordered chapter list.
// It is not safe for concurrent use; a [Session] guards it.
type Navigator struct {
	chapters []*catalog.Chapter
	index    int // into chapters
	page     int
}

/*
NewNavigator positions a navigator at page 0 of the given chapter.

Returns:
  - *Navigator: Ready to navigate
  - error: NotFound when the chapter does not exist, CONTENT_UNAVAILABLE when
    the list is empty or a chapter has no pages
*/
func NewNavigator(chapters []*catalog.Chapter, chapter int) (*Navigator, error) {
	if len(chapters) == 0 {
		return nil, apperr.ContentUnavailable("This title has no chapters")
	}

	ordered := slices.Clone(chapters)
	slices.SortStableFunc(ordered, func(a, b *catalog.Chapter) int { return cmp.Compare(a.Number, b.Number) })

	for _, c := range ordered {
		if c.PageCount() == 0 {
			return nil, apperr.ContentUnavailable(fmt.Sprintf("Chapter %d has no pages", c.Number))
		}
	}

	navigator := &Navigator{chapters: ordered}
	if err := navigator.GoToChapter(chapter); err != nil {
		return nil, err
	}
	return navigator, nil
}

// Position returns the current (chapter, page) pair.
func (navigator *Navigator) Position() Position {
	return Position{Chapter: navigator.current().Number, Page: navigator.page}
}

// PageCount returns the number of pages of the current chapter.
func (navigator *Navigator) PageCount() int {
	return navigator.current().PageCount()
}

// PageURL returns the image of the current page.
func (navigator *Navigator) PageURL() string {
	return navigator.current().Pages[navigator.page]
}

// Chapters returns the chapter numbers in reading order.
func (navigator *Navigator) Chapters() []int {
	numbers := make([]int, len(navigator.chapters))
	for i, c := range navigator.chapters {
		numbers[i] = c.Number
	}
	return numbers
}

// HasNext reports whether [Navigator.Next] would move.
func (navigator *Navigator) HasNext() bool {
	return navigator.page+1 < navigator.PageCount() || navigator.index+1 < len(navigator.chapters)
}

// HasPrev reports whether [Navigator.Prev] would move.
func (navigator *Navigator) HasPrev() bool {
	return navigator.page > 0 || navigator.index > 0
}

// Next advances one page, crossing into page 0 of the next chapter at the end
// of a chapter. At the last page of the last chapter it does nothing.
func (navigator *Navigator) Next() bool {
	switch {
	case navigator.page+1 < navigator.PageCount():
		navigator.page++
	case navigator.index+1 < len(navigator.chapters):
		navigator.index++
		navigator.page = 0
	default:
		return false
	}
	return true
}

// Prev goes back one page, crossing into the last page of the previous
// chapter at page 0. At the first page of the first chapter it does nothing.
func (navigator *Navigator) Prev() bool {
	switch {
	case navigator.page > 0:
		navigator.page--
	case navigator.index > 0:
		navigator.index--
		navigator.page = navigator.PageCount() - 1
	default:
		return false
	}
	return true
}

// GoToChapter jumps to page 0 of chapter number. Unknown numbers leave the
// position unchanged.
func (navigator *Navigator) GoToChapter(number int) error {
	index := slices.IndexFunc(navigator.chapters, func(c *catalog.Chapter) bool { return c.Number == number })
	if index < 0 {
		return apperr.NotFound(fmt.Sprintf("Chapter %d", number))
	}

	navigator.index = index
	navigator.page = 0
	return nil
}

// SetPage jumps within the current chapter.
func (navigator *Navigator) SetPage(page int) error {
	if page < 0 || page >= navigator.PageCount() {
		return apperr.ValidationError("Page out of range", apperr.FieldError{
			Field:   "page",
			Message: fmt.Sprintf("must be between 0 and %d", navigator.PageCount()-1),
		})
	}

	navigator.page = page
	return nil
}

func (navigator *Navigator) current() *catalog.Chapter {
	return navigator.chapters[navigator.index]
}
