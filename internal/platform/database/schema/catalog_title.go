// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the PostgreSQL catalogue so
// that queries never embed raw identifiers.
package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table         string
	ID            string
	Ordinal       string
	Title         string
	Author        string
	Description   string
	Genres        string
	Tags          string
	Status        string
	Rating        string
	Year          string
	TotalChapters string
	TotalPages    string
	LastUpdated   string
	Popularity    string
	Language      string
	Type          string
	CoverImage    string
	GalleryID     string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:         "catalog.title",
	ID:            "id",
	Ordinal:       "ordinal",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	Genres:        "genres",
	Tags:          "tags",
	Status:        "status",
	Rating:        "rating",
	Year:          "year",
	TotalChapters: "totalchapters",
	TotalPages:    "totalpages",
	LastUpdated:   "lastupdated",
	Popularity:    "popularity",
	Language:      "language",
	Type:          "type",
	CoverImage:    "coverimage",
	GalleryID:     "galleryid",
}

// Columns lists the readable columns in scan order. Ordinal is write-only.
func (t CatalogTitleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.Genres, t.Tags, t.Status,
		t.Rating, t.Year, t.TotalChapters, t.TotalPages, t.LastUpdated,
		t.Popularity, t.Language, t.Type, t.CoverImage, t.GalleryID,
	}
}
