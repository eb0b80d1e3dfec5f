// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

// FallbackCover is used for galleries without any image.
const FallbackCover = "https://images.pexels.com/photos/159533/book-reading-read-literature-159533.jpeg?auto=compress&cs=tinysrgb&w=400"

// pagesPerChapterGuess sizes chapters when the title gives no hint.
const pagesPerChapterGuess = 20

// chaptersPerVolume is assumed for "Volume n" titles.
const chaptersPerVolume = 10

var (
	artistPrefix = regexp.MustCompile(`^\[.*?\]\s*`)
	chapterRange = regexp.MustCompile(`(?i)chapter\s+(\d+)\s*-\s*(\d+)`)
	volumeNumber = regexp.MustCompile(`(?i)volume\s+(\d+)`)
)

// Tag categories that feed the generated description.
const (
	CategoryGenre     = "genre"
	CategorySetting   = "setting"
	CategoryCharacter = "character"
	CategoryTheme     = "theme"
)

/*
Convert maps a raw record onto a catalogue title.

Description: Genres are the "genre" tags in title case; every tag name is kept
as a free-form tag. The "[artist]" prefix is stripped from the display title.
Dates come from the record timestamp (UTC). The chapter count is taken from
the record, else inferred from the title, and then adjusted so that
partitioning the images yields exactly that many non-empty chapters.

Returns:
  - *catalog.Title: A title satisfying [catalog.Title.Validate]
  - error: When the record has no id, no images, or invalid supplied values
*/
func Convert(record *Record) (*catalog.Title, error) {
	id := record.ID()
	if id == "" {
		return nil, fmt.Errorf("gallery: record has no gallery_id")
	}

	images := record.ImageURLs()
	if len(images) == 0 {
		return nil, fmt.Errorf("gallery: %s has no images", id)
	}

	updated := time.Unix(record.Timestamp, 0).UTC()
	titleCase := cases.Title(language.Und)

	var genres, tags []string
	for _, tag := range record.Metadata.Tags {
		tags = append(tags, tag.Name)
		if tag.Category == CategoryGenre {
			genres = append(genres, titleCase.String(tag.Name))
		}
	}

	status := catalog.StatusCompleted
	if record.Status != "" {
		status = catalog.Status(record.Status)
	}

	totalPages := record.Metadata.Pages
	if totalPages <= 0 {
		totalPages = len(images)
	}

	title := &catalog.Title{
		ID:            id,
		Title:         artistPrefix.ReplaceAllString(record.Metadata.Title, ""),
		Author:        strings.Join(record.Metadata.Artist, ", "),
		Description:   describe(&record.Metadata),
		Genres:        nonNil(genres),
		Tags:          nonNil(tags),
		Status:        status,
		Rating:        pointer.Fallback(record.Rating, 0),
		Year:          updated.Year(),
		TotalChapters: realizedChapters(len(images), chapterCount(record, totalPages)),
		TotalPages:    totalPages,
		LastUpdated:   updated,
		Popularity:    pointer.Fallback(record.Popularity, 0),
		Language:      record.Metadata.Language,
		Type:          record.Metadata.Type,
		CoverImage:    images[0],
		GalleryID:     id,
	}

	if err := title.Validate(); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return title, nil
}

// ImageURLs returns the page image URLs in reading order.
func (record *Record) ImageURLs() []string {
	if len(record.Images) > 0 {
		urls := make([]string, 0, len(record.Images))
		for _, image := range record.Images {
			if image.URL != "" {
				urls = append(urls, image.URL)
			}
		}
		return urls
	}

	if record.ImagePattern == "" {
		return nil
	}
	urls := make([]string, record.Metadata.Pages)
	for i := range urls {
		urls[i] = strings.ReplaceAll(record.ImagePattern, "{page}", strconv.Itoa(i+1))
	}
	return urls
}

// chapterCount picks the requested number of chapters before partitioning.
//
//  1. An explicit chapters value
//  2. "Chapter a-b" in the title: b-a+1
//  3. "Volume n" in the title: n * chaptersPerVolume
//  4. One chapter per pagesPerChapterGuess pages, rounded up
func chapterCount(record *Record, totalPages int) int {
	if record.Chapters != nil && *record.Chapters > 0 {
		return *record.Chapters
	}

	if match := chapterRange.FindStringSubmatch(record.Metadata.Title); match != nil {
		first, _ := strconv.Atoi(match[1])
		last, _ := strconv.Atoi(match[2])
		if last >= first {
			return last - first + 1
		}
	}

	if match := volumeNumber.FindStringSubmatch(record.Metadata.Title); match != nil {
		if volume, _ := strconv.Atoi(match[1]); volume > 0 {
			return volume * chaptersPerVolume
		}
	}

	return max(1, (totalPages+pagesPerChapterGuess-1)/pagesPerChapterGuess)
}

// realizedChapters returns how many non-empty chapters remain when images are
// split into ceil(images/requested) sized chunks.
func realizedChapters(images, requested int) int {
	requested = min(max(requested, 1), images)
	perChapter := (images + requested - 1) / requested
	return (images + perChapter - 1) / perChapter
}

// describe composes a short blurb from the categorised tags.
func describe(metadata *Metadata) string {
	byCategory := func(category string) []string {
		var names []string
		for _, tag := range metadata.Tags {
			if tag.Category == category {
				names = append(names, tag.Name)
			}
		}
		return names
	}

	kind := metadata.Type
	if kind == "" {
		kind = "work"
	}

	var builder strings.Builder
	builder.WriteString("A " + kind)
	if len(metadata.Artist) > 0 {
		builder.WriteString(" by " + strings.Join(metadata.Artist, ", "))
	}
	builder.WriteString(".")

	if settings := byCategory(CategorySetting); len(settings) > 0 {
		builder.WriteString(" Set in a " + strings.Join(settings, " and ") + " world.")
	}
	if characters := byCategory(CategoryCharacter); len(characters) > 0 {
		builder.WriteString(" Featuring " + strings.Join(characters, ", ") + ".")
	}
	if themes := byCategory(CategoryTheme); len(themes) > 0 {
		builder.WriteString(" Explores themes of " + strings.Join(themes, ", ") + ".")
	}

	return builder.String()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
