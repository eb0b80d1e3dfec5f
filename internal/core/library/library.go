// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library persists what a reader installation remembers between sessions.

Core Responsibility:

  - Settings: The reading preferences (brightness, direction, page display,
    transition, auto-hide) stored under one key.
  - Bookmarks: A per-title flag.
  - Progress: The capped "recently read" list, one entry per title.

Everything lives in a small key/value [Store] scoped per profile. Missing or
unreadable keys fall back to their defaults, so no schema migration is ever
needed.
*/
package library

import "time"

// # Store Keys

const (
	KeySettings       = "readingSettings"
	KeyRecentlyRead   = "recentlyRead"
	keyBookmarkPrefix = "bookmark-"
)

// BookmarkKey returns the store key of a title's bookmark flag.
func BookmarkKey(mangaID string) string {
	return keyBookmarkPrefix + mangaID
}

// # Reading Settings

// Direction is the reading direction of the page axis.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// PageDisplay selects one or two pages per spread.
type PageDisplay string

const (
	PageSingle PageDisplay = "single"
	PageDouble PageDisplay = "double"
)

// Transition is the animation used when the page changes.
type Transition string

const (
	TransitionSlide Transition = "slide"
	TransitionFade  Transition = "fade"
	TransitionNone  Transition = "none"
)

// Settings are the persisted reading preferences of a profile.
// Zoom is deliberately absent: it resets with every reader session.
type Settings struct {
	Brightness       int         `json:"brightness"`
	ReadingDirection Direction   `json:"reading_direction"`
	PageDisplay      PageDisplay `json:"page_display"`
	AutoHideControls bool        `json:"auto_hide_controls"`
	PageTransition   Transition  `json:"page_transition"`
}

// DefaultSettings are used for profiles that never saved any.
func DefaultSettings() Settings {
	return Settings{
		Brightness:       100,
		ReadingDirection: DirectionLTR,
		PageDisplay:      PageSingle,
		AutoHideControls: true,
		PageTransition:   TransitionSlide,
	}
}

// # Progress

// Progress is the last-read position of one title.
type Progress struct {
	MangaID  string    `json:"manga_id"`
	Chapter  int       `json:"chapter"`
	Page     int       `json:"page"` // 0-based
	LastRead time.Time `json:"last_read"`
}

// DefaultHistoryCap bounds the recently-read list when no cap is configured.
const DefaultHistoryCap = 20

// MaxMangaIDLength bounds title ids before they become part of a storage key.
const MaxMangaIDLength = 128
