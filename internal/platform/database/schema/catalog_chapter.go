// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Schema      string
	Name        string
	Table       string
	ID          string
	MangaID     string
	Number      string
	Title       string
	Pages       string
	ReleaseDate string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Schema:      "catalog",
	Name:        "chapter",
	Table:       "catalog.chapter",
	ID:          "id",
	MangaID:     "mangaid",
	Number:      "number",
	Title:       "title",
	Pages:       "pages",
	ReleaseDate: "releasedate",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.ID, t.MangaID, t.Number, t.Title, t.Pages, t.ReleaseDate}
}
