// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-reader/internal/platform/database/schema"
	"github.com/taibuivan/yomira-reader/internal/platform/dberr"
)

// # PostgreSQL Source

// PostgresSource serves the catalogue from the catalog schema in PostgreSQL.
// Listing order is the ingestion ordinal, which keeps the stable sort of the
// query engine deterministic across restarts.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource constructs a PostgreSQL backed source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

var (
	titleColumns   = strings.Join(schema.CatalogTitle.Columns(), ", ")
	chapterColumns = strings.Join(schema.CatalogChapter.Columns(), ", ")
)

/*
GetTitle retrieves a single title by id.

Returns:
  - *Title: The hydrated title
  - error: NotFound when no row matches, RequestFailed on database errors
*/
func (source *PostgresSource) GetTitle(context context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		titleColumns, schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	title, err := scanTitle(source.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Title", "catalog.get_title")
	}
	return title, nil
}

/*
ListChapters retrieves every chapter of a title ordered by number.

The title must exist; a title without chapters yields an empty slice.
*/
func (source *PostgresSource) ListChapters(context context.Context, titleID string) ([]*Chapter, error) {

	// Existence check keeps NotFound distinct from "no chapters yet"
	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)
	if err := source.pool.QueryRow(context, existsQuery, titleID).Scan(&exists); err != nil {
		return nil, dberr.Wrap(err, "Title", "catalog.title_exists")
	}
	if !exists {
		return nil, dberr.Wrap(pgx.ErrNoRows, "Title", "catalog.title_exists")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		chapterColumns, schema.CatalogChapter.Table, schema.CatalogChapter.MangaID, schema.CatalogChapter.Number)

	rows, err := source.pool.Query(context, query, titleID)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "catalog.list_chapters")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		var chapter Chapter
		if err := rows.Scan(
			&chapter.ID,
			&chapter.MangaID,
			&chapter.Number,
			&chapter.Title,
			&chapter.Pages,
			&chapter.ReleaseDate,
		); err != nil {
			return nil, dberr.Wrap(err, "Chapter", "catalog.scan_chapter")
		}
		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "catalog.list_chapters")
	}
	return chapters, nil
}

// ListTitles retrieves every title in ingestion order.
func (source *PostgresSource) ListTitles(context context.Context) ([]*Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s`,
		titleColumns, schema.CatalogTitle.Table, schema.CatalogTitle.Ordinal, schema.CatalogTitle.ID)

	rows, err := source.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Title", "catalog.list_titles")
	}
	defer rows.Close()

	titles := []*Title{}
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Title", "catalog.scan_title")
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Title", "catalog.list_titles")
	}
	return titles, nil
}

// # Ingestion

/*
UpsertTitle inserts or replaces a title.

Parameters:
  - context: context.Context
  - title: *Title (Must satisfy [Title.Validate])
  - ordinal: int (Listing position; ties are broken by id)
*/
func (source *PostgresSource) UpsertTitle(context context.Context, title *Title, ordinal int) error {
	if err := title.Validate(); err != nil {
		return err
	}

	t := schema.CatalogTitle
	columns := append([]string{t.Ordinal}, t.Columns()...)

	placeholders := make([]string, len(columns))
	updates := make([]string, 0, len(columns)-1)
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if column != t.ID {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s`,
		t.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		t.ID,
		strings.Join(updates, ", "),
	)

	_, err := source.pool.Exec(context, query,
		ordinal,
		title.ID, title.Title, title.Author, title.Description, title.Genres, title.Tags,
		string(title.Status), title.Rating, title.Year, title.TotalChapters, title.TotalPages,
		title.LastUpdated, title.Popularity, title.Language, title.Type, title.CoverImage, title.GalleryID,
	)
	return dberr.Wrap(err, "Title", "catalog.upsert_title")
}

// ReplaceChapters atomically replaces every chapter of a title using COPY.
func (source *PostgresSource) ReplaceChapters(context context.Context, titleID string, chapters []*Chapter) error {
	return pgx.BeginFunc(context, source.pool, func(tx pgx.Tx) error {
		c := schema.CatalogChapter

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.MangaID)
		if _, err := tx.Exec(context, deleteQuery, titleID); err != nil {
			return dberr.Wrap(err, "Chapter", "catalog.delete_chapters")
		}

		rows := make([][]any, 0, len(chapters))
		for _, chapter := range chapters {
			rows = append(rows, []any{
				chapter.ID, titleID, chapter.Number, chapter.Title, chapter.Pages, chapter.ReleaseDate,
			})
		}

		_, err := tx.CopyFrom(context, pgx.Identifier{c.Schema, c.Name}, c.Columns(), pgx.CopyFromRows(rows))
		return dberr.Wrap(err, "Chapter", "catalog.copy_chapters")
	})
}

// scanTitle hydrates a title from a row in [schema.CatalogTitleTable.Columns] order.
func scanTitle(row pgx.Row) (*Title, error) {
	var title Title
	var status string

	err := row.Scan(
		&title.ID,
		&title.Title,
		&title.Author,
		&title.Description,
		&title.Genres,
		&title.Tags,
		&status,
		&title.Rating,
		&title.Year,
		&title.TotalChapters,
		&title.TotalPages,
		&title.LastUpdated,
		&title.Popularity,
		&title.Language,
		&title.Type,
		&title.CoverImage,
		&title.GalleryID,
	)
	if err != nil {
		return nil, err
	}

	title.Status = Status(status)
	return &title, nil
}
