// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/pkg/pagination"
)

// searchOutput mirrors the paginated HTTP envelope.
type searchOutput struct {
	Data []*catalog.Title `json:"data"`
	Meta pagination.Meta  `json:"meta"`
}

func newSearchCommand(g *globals) *cobra.Command {
	var (
		text, status, language, sort, dir string
		genres, tags                      []string
		minRating                         float64
		minPages, maxPages, page, limit   int
	)

	command := &cobra.Command{
		Use:   "search",
		Short: "Query the seed catalogue and print one page as JSON",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {

			// 1. Route the flags through the same parser as GET /titles
			values := url.Values{}
			set := func(key, value string) {
				if value != "" {
					values.Set(key, value)
				}
			}
			set(catalog.FieldQuery, text)
			set(catalog.FieldStatus, status)
			set(catalog.FieldLanguage, language)
			set(catalog.FieldSort, sort)
			set(catalog.FieldDir, dir)
			values[catalog.FieldGenres] = genres
			values[catalog.FieldTags] = tags
			if command.Flags().Changed("min-rating") {
				values.Set(catalog.FieldMinRating, strconv.FormatFloat(minRating, 'f', -1, 64))
			}
			values.Set(catalog.FieldMinPages, strconv.Itoa(minPages))
			values.Set(catalog.FieldMaxPages, strconv.Itoa(maxPages))
			values.Set(catalog.FieldPage, strconv.Itoa(page))
			values.Set(catalog.FieldLimit, strconv.Itoa(limit))

			filter, pageNumber, pageSize, err := catalog.ParseSearchQuery(values)
			if err != nil {
				return err
			}

			// 2. Query
			service, err := g.service()
			if err != nil {
				return err
			}
			result, err := service.Search(command.Context(), filter, pageNumber, pageSize)
			if err != nil {
				return err
			}

			return g.print(searchOutput{
				Data: result.Items,
				Meta: pagination.NewMeta(result.Page, result.PageSize, result.Total),
			})
		},
	}

	flags := command.Flags()
	flags.StringVarP(&text, "query", "q", "", "Title, author or tag substring")
	flags.StringSliceVar(&genres, "genre", nil, "Required genre (repeatable)")
	flags.StringSliceVar(&tags, "tag", nil, "Required tag (repeatable)")
	flags.StringVar(&status, "status", "", "ongoing, completed or hiatus")
	flags.StringVar(&language, "language", "", "Language name")
	flags.Float64Var(&minRating, "min-rating", 0, "Rating floor (0 to 5)")
	flags.IntVar(&minPages, "min-pages", 0, "Minimum total pages (0 = unbounded)")
	flags.IntVar(&maxPages, "max-pages", 0, "Maximum total pages (0 = unbounded)")
	flags.StringVar(&sort, "sort", "", "popularity, rating, updated, title, year or pages")
	flags.StringVar(&dir, "dir", "", "asc or desc")
	flags.IntVar(&page, "page", pagination.DefaultPage, "1-based page")
	flags.IntVar(&limit, "limit", pagination.DefaultLimit, "Page size")

	return command
}
