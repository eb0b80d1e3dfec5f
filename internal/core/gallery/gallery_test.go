// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/gallery"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

func record(id, title string, pages int) *gallery.Record {
	images := make([]gallery.Image, pages)
	for i := range images {
		images[i] = gallery.Image{
			Filename: fmt.Sprintf("%03d.webp", i+1),
			URL:      fmt.Sprintf("https://cdn.test/%s/%d.webp", id, i+1),
			Page:     i + 1,
		}
	}
	return &gallery.Record{
		GalleryID: id,
		Images:    images,
		Metadata: gallery.Metadata{
			Title:     title,
			GalleryID: id,
			Language:  "japanese",
			Artist:    []string{"tachibana omina"},
			Type:      "manga",
			Pages:     pages,
			Tags: []gallery.Tag{
				{Name: "action", Category: "genre"},
				{Name: "slice of life", Category: "genre"},
				{Name: "ninja", Category: "character"},
				{Name: "modern setting", Category: "setting"},
			},
		},
		Timestamp: 1755271857,
	}
}

/*
TestConvert_Mapping checks the field-by-field mapping of a record onto a title.
*/
func TestConvert_Mapping(t *testing.T) {
	title, err := gallery.Convert(record("589790", "[Tachibana Omina] Shadow Chronicles Chapter 1-3", 208))
	require.NoError(t, err)

	assert.Equal(t, "589790", title.ID)
	assert.Equal(t, "589790", title.GalleryID)
	assert.Equal(t, "Shadow Chronicles Chapter 1-3", title.Title)
	assert.Equal(t, "tachibana omina", title.Author)
	assert.Equal(t, []string{"Action", "Slice Of Life"}, title.Genres)
	assert.Equal(t, []string{"action", "slice of life", "ninja", "modern setting"}, title.Tags)
	assert.Equal(t, catalog.StatusCompleted, title.Status)
	assert.Equal(t, 3, title.TotalChapters)
	assert.Equal(t, 208, title.TotalPages)
	assert.Equal(t, 2025, title.Year)
	assert.Equal(t, time.Unix(1755271857, 0).UTC(), title.LastUpdated)
	assert.Equal(t, "https://cdn.test/589790/1.webp", title.CoverImage)
	assert.Zero(t, title.Rating)
	assert.Zero(t, title.Popularity)
	assert.Equal(t, "A manga by tachibana omina. Set in a modern setting world. Featuring ninja.", title.Description)
}

/*
TestConvert_SuppliedRanking verifies that rating, popularity and status are taken from the record.
*/
func TestConvert_SuppliedRanking(t *testing.T) {
	rec := record("1", "Plain", 40)
	rec.Rating = pointer.To(4.7)
	rec.Popularity = pointer.To(1200)
	rec.Status = "ongoing"

	title, err := gallery.Convert(rec)
	require.NoError(t, err)
	assert.Equal(t, 4.7, title.Rating)
	assert.Equal(t, 1200, title.Popularity)
	assert.Equal(t, catalog.StatusOngoing, title.Status)

	rec.Rating = pointer.To(6.0)
	_, err = gallery.Convert(rec)
	assert.Error(t, err)

	rec.Rating = nil
	rec.Status = "cancelled"
	_, err = gallery.Convert(rec)
	assert.Error(t, err)
}

/*
TestConvert_ChapterCount covers each chapter-count source and the realized adjustment.
*/
func TestConvert_ChapterCount(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		pages    int
		explicit *int
		want     int
	}{
		{"chapter_range", "Saga Chapter 4-9", 120, nil, 6},
		{"volume", "Neon Dreams Volume 1", 156, nil, 10},
		{"pages_guess", "Cherry Blossom Academy", 180, nil, 9},
		{"small_gallery", "Tiny", 7, nil, 1},
		{"explicit_wins", "Saga Chapter 1-3", 224, pointer.To(12), 12},
		{"clamped_to_images", "Saga Chapter 1-50", 10, nil, 10},
		{"realized_partition", "Odd", 5, pointer.To(4), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record("g", tt.title, tt.pages)
			rec.Chapters = tt.explicit

			title, err := gallery.Convert(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, title.TotalChapters)
			assert.Len(t, gallery.Chapters(rec, title), tt.want)
		})
	}
}

/*
TestConvert_Rejections ensures records that cannot become titles are refused.
*/
func TestConvert_Rejections(t *testing.T) {
	noID := record("", "x", 3)
	_, err := gallery.Convert(noID)
	assert.Error(t, err)

	noImages := record("g", "x", 0)
	_, err = gallery.Convert(noImages)
	assert.Error(t, err)
}

/*
TestChapters_Partition verifies contiguous numbering, page coverage and release dates.
*/
func TestChapters_Partition(t *testing.T) {
	rec := record("589790", "Shadow Chronicles Chapter 1-3", 208)
	title, err := gallery.Convert(rec)
	require.NoError(t, err)

	chapters := gallery.Chapters(rec, title)
	require.Len(t, chapters, 3)

	total := 0
	for i, chapter := range chapters {
		assert.Equal(t, i+1, chapter.Number)
		assert.Equal(t, fmt.Sprintf("589790-ch%d", i+1), chapter.ID)
		assert.Equal(t, fmt.Sprintf("Chapter %d", i+1), chapter.Title)
		assert.Equal(t, "589790", chapter.MangaID)
		assert.NotZero(t, chapter.PageCount())
		total += chapter.PageCount()
	}

	assert.Equal(t, 208, total)
	assert.Equal(t, []int{70, 70, 68}, []int{chapters[0].PageCount(), chapters[1].PageCount(), chapters[2].PageCount()})
	assert.Equal(t, "https://cdn.test/589790/71.webp", chapters[1].Pages[0])

	updated := time.Unix(1755271857, 0).UTC()
	assert.Equal(t, updated, chapters[2].ReleaseDate)
	assert.Equal(t, updated.Add(-48*time.Hour), chapters[0].ReleaseDate)
}

/*
TestRecord_ImagePattern expands page URLs when no explicit image list is given.
*/
func TestRecord_ImagePattern(t *testing.T) {
	rec := &gallery.Record{
		GalleryID:    "p",
		ImagePattern: "https://cdn.test/p/{page}.webp",
		Metadata:     gallery.Metadata{Title: "Pattern", Pages: 3},
	}

	assert.Equal(t, []string{
		"https://cdn.test/p/1.webp",
		"https://cdn.test/p/2.webp",
		"https://cdn.test/p/3.webp",
	}, rec.ImageURLs())

	title, err := gallery.Convert(rec)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/p/1.webp", title.CoverImage)
	assert.Equal(t, "A work.", title.Description)
}

/*
TestIngest_DuplicateIDs rejects two records sharing a gallery id.
*/
func TestIngest_DuplicateIDs(t *testing.T) {
	_, _, err := gallery.Ingest([]*gallery.Record{record("a", "x", 4), record("a", "y", 4)})
	assert.ErrorContains(t, err, "duplicate")
}

/*
TestLoadSeed_Formats decodes the same records from JSON and YAML files.
*/
func TestLoadSeed_Formats(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
		{"gallery_id": "1", "image_pattern": "https://cdn.test/1/{page}.webp",
		 "metadata": {"title": "One", "pages": 4}, "timestamp": 1700000000, "rating": 4.2}
	]`), 0o600))

	yamlPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- gallery_id: "1"
  image_pattern: https://cdn.test/1/{page}.webp
  metadata:
    title: One
    pages: 4
  timestamp: 1700000000
  rating: 4.2
`), 0o600))

	fromJSON, err := gallery.LoadSeed(jsonPath)
	require.NoError(t, err)
	fromYAML, err := gallery.LoadSeed(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	require.Len(t, fromJSON, 1)
	assert.Equal(t, 4.2, *fromJSON[0].Rating)

	_, err = gallery.LoadSeed(filepath.Join(dir, "seed.toml"))
	assert.Error(t, err)
}

/*
TestBuildSource_ShippedSeed ingests the bundled seed file end to end.
*/
func TestBuildSource_ShippedSeed(t *testing.T) {
	records, err := gallery.LoadSeed("../../../data/seed/galleries.json")
	require.NoError(t, err)

	source, err := gallery.BuildSource(records)
	require.NoError(t, err)
	assert.Equal(t, 6, source.Len())
}
