// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements catalogctl, the operator command line for the catalogue.

Commands:

  - search: Runs a catalogue query against a seed file and prints the page.
  - facets: Prints the genre, tag and language lists of a seed file.
  - migrate: Applies or reverts the PostgreSQL catalogue schema.
  - import: Converts a seed file and upserts it into PostgreSQL.

Every command prints JSON to the configured output so it can be piped into jq.
*/
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/gallery"
	pgstore "github.com/taibuivan/yomira-reader/internal/platform/postgres"
)

// CatalogWriter is the ingestion side of the PostgreSQL catalogue source.
type CatalogWriter interface {
	UpsertTitle(ctx context.Context, title *catalog.Title, ordinal int) error
	ReplaceChapters(ctx context.Context, titleID string, chapters []*catalog.Chapter) error
}

// Options carries the process-level dependencies of the commands.
type Options struct {
	Out    io.Writer
	Logger *slog.Logger

	// OpenWriter connects to the catalogue database. Defaults to a pgx pool.
	OpenWriter func(ctx context.Context, dsn string, logger *slog.Logger) (CatalogWriter, func(), error)
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	options     Options
	seedPath    string
	databaseURL string
}

// NewRootCommand builds the catalogctl command tree.
func NewRootCommand(options Options) *cobra.Command {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.OpenWriter == nil {
		options.OpenWriter = openPostgresWriter
	}

	g := &globals{options: options}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operate the Yomira Reader catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(options.Out)

	root.PersistentFlags().StringVar(&g.seedPath, "seed", envOr("CATALOG_SEED_PATH", "./data/seed/galleries.json"), "Gallery seed file (.json, .yaml)")
	root.PersistentFlags().StringVar(&g.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")

	root.AddCommand(
		newSearchCommand(g),
		newFacetsCommand(g),
		newMigrateCommand(g),
		newImportCommand(g),
	)
	return root
}

// service builds a catalogue service over the seed file.
func (g *globals) service() (*catalog.Service, error) {
	records, err := gallery.LoadSeed(g.seedPath)
	if err != nil {
		return nil, err
	}
	source, err := gallery.BuildSource(records)
	if err != nil {
		return nil, err
	}
	return catalog.NewService(source, nil, g.options.Logger), nil
}

func (g *globals) print(value any) error {
	encoder := json.NewEncoder(g.options.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func openPostgresWriter(ctx context.Context, dsn string, logger *slog.Logger) (CatalogWriter, func(), error) {
	pool, err := pgstore.NewPool(ctx, dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPostgresSource(pool), pool.Close, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
