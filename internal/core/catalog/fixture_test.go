// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"time"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
)

// fixture returns six titles in a fixed input order. A, C and F share the
// Action genre; D and E share a rating so stability can be observed.
func fixture() []*catalog.Title {
	day := func(d int) time.Time { return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC) }

	return []*catalog.Title{
		{ID: "A", Title: "Shadow Chronicles", Author: "tachibana omina", Genres: []string{"Action", "Drama"},
			Tags: []string{"action", "ninja", "modern setting"}, Status: catalog.StatusCompleted, Rating: 4.8,
			Year: 2023, TotalChapters: 3, TotalPages: 208, LastUpdated: day(10), Popularity: 9000, Language: "japanese"},
		{ID: "B", Title: "Cherry Blossom Academy", Author: "mei yoshida", Genres: []string{"Romance", "Slice Of Life"},
			Tags: []string{"romance", "school", "friendship"}, Status: catalog.StatusOngoing, Rating: 4.9,
			Year: 2024, TotalChapters: 9, TotalPages: 180, LastUpdated: day(15), Popularity: 7000, Language: "english"},
		{ID: "C", Title: "Dragon's Legacy", Author: "hiroshi nakamura", Genres: []string{"Fantasy", "Action"},
			Tags: []string{"fantasy", "dragon", "magic"}, Status: catalog.StatusOngoing, Rating: 4.6,
			Year: 2022, TotalChapters: 12, TotalPages: 224, LastUpdated: day(12), Popularity: 5000, Language: "japanese"},
		{ID: "D", Title: "Mystery Café", Author: "kana watanabe", Genres: []string{"Mystery", "Comedy"},
			Tags: []string{"mystery", "detective", "café"}, Status: catalog.StatusHiatus, Rating: 4.2,
			Year: 2021, TotalChapters: 7, TotalPages: 132, LastUpdated: day(3), Popularity: 3000, Language: "english"},
		{ID: "E", Title: "Neon Dreams", Author: "yuki sato", Genres: []string{"Sci-Fi", "Thriller"},
			Tags: []string{"cyberpunk", "hacker", "future"}, Status: catalog.StatusCompleted, Rating: 4.2,
			Year: 2024, TotalChapters: 10, TotalPages: 156, LastUpdated: day(20), Popularity: 3000, Language: "english"},
		{ID: "F", Title: "Space Pirates Saga", Author: "takeshi mori", Genres: []string{"Sci-Fi", "Action", "Adventure"},
			Tags: []string{"space", "pirates"}, Status: catalog.StatusCompleted, Rating: 4.4,
			Year: 2023, TotalChapters: 10, TotalPages: 196, LastUpdated: day(1), Popularity: 8000, Language: "japanese"},
	}
}

func ids(titles []*catalog.Title) []string {
	out := make([]string, len(titles))
	for i, title := range titles {
		out[i] = title.ID
	}
	return out
}
