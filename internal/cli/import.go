// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/gallery"
)

type importOutput struct {
	Titles   int `json:"titles"`
	Chapters int `json:"chapters"`
}

func newImportCommand(g *globals) *cobra.Command {
	var dryRun bool

	command := &cobra.Command{
		Use:   "import",
		Short: "Convert the seed file and upsert it into the PostgreSQL catalogue",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {

			// 1. Convert everything before touching the database
			records, err := gallery.LoadSeed(g.seedPath)
			if err != nil {
				return err
			}
			titles, chapters, err := gallery.Ingest(records)
			if err != nil {
				return err
			}
			if dryRun {
				return g.print(summarize(titles, chapters))
			}

			// 2. Write
			if g.databaseURL == "" {
				return errNoDatabase
			}
			writer, closeWriter, err := g.options.OpenWriter(command.Context(), g.databaseURL, g.options.Logger)
			if err != nil {
				return err
			}
			defer closeWriter()

			if err := importTitles(command.Context(), writer, titles, chapters, g.options.Logger); err != nil {
				return err
			}
			return g.print(summarize(titles, chapters))
		},
	}

	command.Flags().BoolVar(&dryRun, "dry-run", false, "Convert and report without writing")
	return command
}

// importTitles writes titles in seed order; the seed position becomes the listing ordinal.
func importTitles(context context.Context, writer CatalogWriter, titles []*catalog.Title, chapters map[string][]*catalog.Chapter, logger *slog.Logger) error {
	for ordinal, title := range titles {
		if err := writer.UpsertTitle(context, title, ordinal); err != nil {
			return fmt.Errorf("import %s: %w", title.ID, err)
		}
		if err := writer.ReplaceChapters(context, title.ID, chapters[title.ID]); err != nil {
			return fmt.Errorf("import %s chapters: %w", title.ID, err)
		}
		logger.Info("catalog_title_imported",
			slog.String("title_id", title.ID),
			slog.Int("chapters", len(chapters[title.ID])),
		)
	}
	return nil
}

func summarize(titles []*catalog.Title, chapters map[string][]*catalog.Chapter) importOutput {
	output := importOutput{Titles: len(titles)}
	for _, list := range chapters {
		output.Chapters += len(list)
	}
	return output
}
