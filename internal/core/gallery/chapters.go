// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery

import (
	"fmt"
	"time"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
)

const day = 24 * time.Hour

/*
Chapters partitions the record's images into title.TotalChapters sequential chapters.

Description: Each chapter takes ceil(images/chapters) consecutive images; the
last chapter holds the remainder. Chapter i of n is dated (n-i) days before the
gallery timestamp so that the newest chapter carries the update date.

Returns:
  - []*catalog.Chapter: Chapters numbered from 1, none of them empty
*/
func Chapters(record *Record, title *catalog.Title) []*catalog.Chapter {
	images := record.ImageURLs()
	if len(images) == 0 || title.TotalChapters < 1 {
		return nil
	}

	perChapter := (len(images) + title.TotalChapters - 1) / title.TotalChapters
	updated := time.Unix(record.Timestamp, 0).UTC()

	chapters := make([]*catalog.Chapter, 0, title.TotalChapters)
	for start := 0; start < len(images); start += perChapter {
		number := len(chapters) + 1
		end := min(start+perChapter, len(images))

		chapters = append(chapters, &catalog.Chapter{
			ID:          fmt.Sprintf("%s-ch%d", title.ID, number),
			MangaID:     title.ID,
			Number:      number,
			Title:       fmt.Sprintf("Chapter %d", number),
			Pages:       append([]string(nil), images[start:end]...),
			ReleaseDate: updated.Add(-time.Duration(title.TotalChapters-number) * day),
		})
	}

	return chapters
}

/*
Ingest converts every record, keeping input order.

Returns:
  - []*catalog.Title: Titles in record order
  - map[string][]*catalog.Chapter: Chapters keyed by title id
  - error: The first conversion failure, or a duplicate gallery id
*/
func Ingest(records []*Record) ([]*catalog.Title, map[string][]*catalog.Chapter, error) {
	titles := make([]*catalog.Title, 0, len(records))
	chapters := make(map[string][]*catalog.Chapter, len(records))

	for i, record := range records {
		title, err := Convert(record)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, seen := chapters[title.ID]; seen {
			return nil, nil, fmt.Errorf("record %d: duplicate gallery id %q", i, title.ID)
		}

		titles = append(titles, title)
		chapters[title.ID] = Chapters(record, title)
	}

	return titles, chapters, nil
}

// BuildSource ingests records into an in-memory catalogue source.
func BuildSource(records []*Record) (*catalog.MemorySource, error) {
	titles, chapters, err := Ingest(records)
	if err != nil {
		return nil, err
	}
	return catalog.NewMemorySource(titles, chapters)
}
