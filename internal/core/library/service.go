// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/dberr"
	"github.com/taibuivan/yomira-reader/internal/platform/telemetry"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
)

// Options tune a [Service]. Zero values select the defaults.
type Options struct {
	HistoryCap    int
	BrightnessMin int
	BrightnessMax int
	Now           func() time.Time
}

// # Service Layer

// Service implements the reading settings, bookmarks and progress history on a [Store].
type Service struct {
	store   Store
	options Options
	metrics *telemetry.Metrics
	logger  *slog.Logger

	// history is read-modify-write; writes are serialised per process.
	historyMu sync.Mutex
}

// NewService constructs a new [Service]. metrics may be nil.
func NewService(store Store, options Options, metrics *telemetry.Metrics, logger *slog.Logger) *Service {
	if options.HistoryCap < 1 {
		options.HistoryCap = DefaultHistoryCap
	}
	if options.BrightnessMax == 0 {
		options.BrightnessMin, options.BrightnessMax = 20, 150
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &Service{
		store:   store,
		options: options,
		metrics: metrics,
		logger:  logger,
	}
}

// Ping reports whether the underlying store is reachable.
func (service *Service) Ping(context context.Context) error {
	return service.store.Ping(context)
}

// # Reading Settings

/*
Settings returns the profile's reading settings.

Description: A missing key yields [DefaultSettings]. Fields absent from the
stored document keep their defaults; a document that cannot be decoded or holds
out-of-range values is ignored with a warning.

Returns:
  - Settings: Effective settings
  - error: REQUEST_FAILED when the store rejects the read
*/
func (service *Service) Settings(context context.Context, scope string) (Settings, error) {
	settings := DefaultSettings()

	found, err := service.load(context, scope, KeySettings, &settings)
	if err != nil {
		return DefaultSettings(), err
	}
	if !found {
		return DefaultSettings(), nil
	}

	if err := service.validateSettings(settings); err != nil {
		service.logger.WarnContext(context, "library_settings_invalid",
			slog.String("scope", scope),
			slog.Any("error", err),
		)
		return DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings validates and stores the profile's reading settings.
func (service *Service) SaveSettings(context context.Context, scope string, settings Settings) error {
	if err := service.validateSettings(settings); err != nil {
		return err
	}
	return service.save(context, scope, KeySettings, settings)
}

func (service *Service) validateSettings(settings Settings) error {
	validator := &validate.Validator{}
	validator.
		Range("brightness", settings.Brightness, service.options.BrightnessMin, service.options.BrightnessMax).
		OneOf("reading_direction", string(settings.ReadingDirection), string(DirectionLTR), string(DirectionRTL)).
		OneOf("page_display", string(settings.PageDisplay), string(PageSingle), string(PageDouble)).
		OneOf("page_transition", string(settings.PageTransition), string(TransitionSlide), string(TransitionFade), string(TransitionNone))
	return validator.Err()
}

// # Bookmarks

// IsBookmarked reports the bookmark flag of a title. Unset means false.
func (service *Service) IsBookmarked(context context.Context, scope, mangaID string) (bool, error) {
	var bookmarked bool
	found, err := service.load(context, scope, BookmarkKey(mangaID), &bookmarked)
	if err != nil {
		return false, err
	}
	return found && bookmarked, nil
}

// SetBookmark sets or clears the bookmark flag of a title.
func (service *Service) SetBookmark(context context.Context, scope, mangaID string, bookmarked bool) error {
	if err := (&validate.Validator{}).Identifier("manga_id", mangaID, MaxMangaIDLength).Err(); err != nil {
		return err
	}

	if !bookmarked {
		err := service.store.Delete(context, scope, BookmarkKey(mangaID))
		return dberr.Wrap(err, "Bookmark", "delete bookmark")
	}
	return service.save(context, scope, BookmarkKey(mangaID), true)
}

// # Progress History

// Progress returns the recently-read list, most recent first.
func (service *Service) Progress(context context.Context, scope string) ([]Progress, error) {
	history, err := service.history(context, scope)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(history, func(a, b Progress) int {
		return b.LastRead.Compare(a.LastRead)
	})
	return history, nil
}

// ProgressFor returns the last-read position of one title, or NotFound.
func (service *Service) ProgressFor(context context.Context, scope, mangaID string) (Progress, error) {
	history, err := service.history(context, scope)
	if err != nil {
		return Progress{}, err
	}

	index := slices.IndexFunc(history, func(p Progress) bool { return p.MangaID == mangaID })
	if index < 0 {
		return Progress{}, apperr.NotFound("Progress")
	}
	return history[index], nil
}

/*
RecordProgress upserts the last-read position of a title.

Description: An existing entry for the title is overwritten in place; a new
title is prepended. When the list grows past the cap, the entries with the
oldest timestamps are evicted, so the list never holds two entries for one
title and never exceeds the cap.

Parameters:
  - context: context.Context
  - scope: string (Profile)
  - mangaID: string
  - chapter: int (1-based)
  - page: int (0-based)

Returns:
  - Progress: The stored entry
  - error: VALIDATION_ERROR, or REQUEST_FAILED when the store rejects the write
*/
func (service *Service) RecordProgress(context context.Context, scope, mangaID string, chapter, page int) (Progress, error) {
	validator := &validate.Validator{}
	validator.
		Identifier("manga_id", mangaID, MaxMangaIDLength).
		Custom("chapter", chapter < 1, "must be at least 1").
		Custom("page", page < 0, "must not be negative")
	if err := validator.Err(); err != nil {
		return Progress{}, err
	}

	entry := Progress{
		MangaID:  mangaID,
		Chapter:  chapter,
		Page:     page,
		LastRead: service.options.Now().UTC(),
	}

	service.historyMu.Lock()
	defer service.historyMu.Unlock()

	err := service.upsertProgress(context, scope, entry)
	service.metrics.ProgressWrite(err)
	if err != nil {
		return Progress{}, err
	}
	return entry, nil
}

func (service *Service) upsertProgress(context context.Context, scope string, entry Progress) error {
	history, err := service.history(context, scope)
	if err != nil {
		return err
	}

	// 1. Overwrite in place, or prepend a new title
	if index := slices.IndexFunc(history, func(p Progress) bool { return p.MangaID == entry.MangaID }); index >= 0 {
		history[index] = entry
	} else {
		history = append([]Progress{entry}, history...)
	}

	// 2. Evict the oldest entries beyond the cap
	for len(history) > service.options.HistoryCap {
		evict := oldest(history)
		history = slices.Delete(history, evict, evict+1)
	}

	return service.save(context, scope, KeyRecentlyRead, history)
}

// oldest returns the index of the entry with the earliest timestamp,
// preferring the one furthest down the list on ties.
func oldest(history []Progress) int {
	index := 0
	for i := 1; i < len(history); i++ {
		if !history[i].LastRead.After(history[index].LastRead) {
			index = i
		}
	}
	return index
}

func (service *Service) history(context context.Context, scope string) ([]Progress, error) {
	var history []Progress
	found, err := service.load(context, scope, KeyRecentlyRead, &history)
	if err != nil {
		return nil, err
	}
	if !found || history == nil {
		return []Progress{}, nil
	}
	return history, nil
}

// # Store Helpers

// load decodes key into target. found is false for a missing or corrupt value,
// in which case target must be discarded.
func (service *Service) load(context context.Context, scope, key string, target any) (bool, error) {
	raw, found, err := service.store.Get(context, scope, key)
	if err != nil {
		service.logger.WarnContext(context, "library_store_read_failed",
			slog.String("scope", scope),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, dberr.Wrap(err, "Library entry", "read "+key)
	}
	if !found {
		return false, nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		service.logger.WarnContext(context, "library_value_corrupt",
			slog.String("scope", scope),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, nil
	}
	return true, nil
}

func (service *Service) save(context context.Context, scope, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.store.Set(context, scope, key, raw); err != nil {
		service.logger.WarnContext(context, "library_store_write_failed",
			slog.String("scope", scope),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return dberr.Wrap(err, "Library entry", "write "+key)
	}
	return nil
}
