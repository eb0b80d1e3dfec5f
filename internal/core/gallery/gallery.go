// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gallery ingests raw gallery records into catalogue titles and chapters.

A gallery record is the upstream shape of a scanned work: a flat list of page
images plus tagged metadata. Ingestion turns it into a [catalog.Title] and
partitions the images into sequential chapters.

Ranking inputs (rating, popularity) are read from the record as supplied by an
external pipeline. They are never generated here; a record without them simply
ranks at zero.
*/
package gallery

// Image is one page image of a gallery.
type Image struct {
	Filename string `json:"filename" yaml:"filename"`
	URL      string `json:"url"      yaml:"url"`
	Host     string `json:"host"     yaml:"host"`
	Page     int    `json:"page"     yaml:"page"`
}

// Tag is a categorised metadata label ("genre", "character", "setting", "theme", ...).
type Tag struct {
	Name     string `json:"name"     yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Metadata describes the work itself.
type Metadata struct {
	Title     string   `json:"title"      yaml:"title"`
	GalleryID string   `json:"gallery_id" yaml:"gallery_id"`
	Language  string   `json:"language"   yaml:"language"`
	Tags      []Tag    `json:"tags"       yaml:"tags"`
	Artist    []string `json:"artist"     yaml:"artist"`
	Type      string   `json:"type"       yaml:"type"`
	Pages     int      `json:"pages"      yaml:"pages"`
}

// Record is one raw gallery as delivered by the upstream feed or a seed file.
type Record struct {
	GalleryID string   `json:"gallery_id" yaml:"gallery_id"`
	Images    []Image  `json:"images"     yaml:"images"`
	Metadata  Metadata `json:"metadata"   yaml:"metadata"`
	Timestamp int64    `json:"timestamp"  yaml:"timestamp"` // Unix seconds of the last update

	// ImagePattern expands to Metadata.Pages image URLs when Images is empty.
	// "{page}" is replaced by the 1-based page number.
	ImagePattern string `json:"image_pattern,omitempty" yaml:"image_pattern,omitempty"`

	// Externally supplied values. Nil means "not provided".
	Rating     *float64 `json:"rating,omitempty"     yaml:"rating,omitempty"`
	Popularity *int     `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Status     string   `json:"status,omitempty"     yaml:"status,omitempty"`
	Chapters   *int     `json:"chapters,omitempty"   yaml:"chapters,omitempty"`
}

// ID returns the gallery id, falling back to the metadata copy.
func (record *Record) ID() string {
	if record.GalleryID != "" {
		return record.GalleryID
	}
	return record.Metadata.GalleryID
}
