// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader implements the reading session: where the reader is, what is
shown on top of the page, and how input events move it along.

State Axes:

  - Position: (chapter number, 0-based page index), owned by a [Navigator].
  - Overlay: none, settings or chapter list. Opening one closes the other.
  - Controls: visible or hidden, hidden again by an inactivity timer.
  - View: zoom, brightness and reading direction, independent of position.

Every event is applied atomically under the session lock. Page changes upsert
the profile's progress record; a failed write is logged and never blocks
navigation. A session whose title or chapter cannot be resolved becomes
unavailable and only accepts retry or close.
*/
package reader

import (
	"time"

	"github.com/taibuivan/yomira-reader/internal/core/library"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
)

// # Enums

// Overlay is the panel layered above the page.
type Overlay string

const (
	OverlayNone        Overlay = "none"
	OverlaySettings    Overlay = "settings"
	OverlayChapterList Overlay = "chapter_list"
)

// Status is the load state of a session.
type Status string

const (
	StatusLoading     Status = "loading"
	StatusReady       Status = "ready"
	StatusUnavailable Status = "unavailable"
)

// Action is what the client may offer while content is unavailable.
type Action string

const (
	ActionRetry Action = "retry"
	ActionHome  Action = "home"
)

// # View Transform

// ZoomReset is the zoom factor restored by the reset action.
const ZoomReset = 1.0

// View is the view transform of a session.
type View struct {
	Zoom       float64           `json:"zoom"`
	Brightness int               `json:"brightness"`
	Direction  library.Direction `json:"direction"`
}

// Limits bound the view transform and time the controls.
type Limits struct {
	ZoomMin        float64
	ZoomMax        float64
	ZoomStep       float64
	BrightnessMin  int
	BrightnessMax  int
	BrightnessStep int
	AutoHideDelay  time.Duration
}

// DefaultLimits returns the canonical bounds: zoom 0.5 to 3.0 in 0.25 steps,
// brightness 20 to 150 in steps of 10, controls hidden after 3s.
func DefaultLimits() Limits {
	return Limits{
		ZoomMin:        0.5,
		ZoomMax:        3.0,
		ZoomStep:       0.25,
		BrightnessMin:  20,
		BrightnessMax:  150,
		BrightnessStep: 10,
		AutoHideDelay:  3 * time.Second,
	}
}

// LimitsFromConfig copies the reader tuning of the application config.
func LimitsFromConfig(cfg config.ReaderConfig) Limits {
	return Limits{
		ZoomMin:        cfg.ZoomMin,
		ZoomMax:        cfg.ZoomMax,
		ZoomStep:       cfg.ZoomStep,
		BrightnessMin:  cfg.BrightnessMin,
		BrightnessMax:  cfg.BrightnessMax,
		BrightnessStep: cfg.BrightnessStep,
		AutoHideDelay:  cfg.AutoHideDelay,
	}
}

func (limits Limits) clampZoom(zoom float64) float64 {
	return min(max(zoom, limits.ZoomMin), limits.ZoomMax)
}

func (limits Limits) clampBrightness(brightness int) int {
	return min(max(brightness, limits.BrightnessMin), limits.BrightnessMax)
}

// # Snapshot

// Position is a (chapter number, page index) pair.
type Position struct {
	Chapter int `json:"chapter"`
	Page    int `json:"page"`
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID              string   `json:"id"`
	MangaID         string   `json:"manga_id"`
	Status          Status   `json:"status"`
	Error           string   `json:"error,omitempty"`
	Actions         []Action `json:"actions,omitempty"`
	Title           string   `json:"title,omitempty"`
	Position        Position `json:"position"`
	PageCount       int      `json:"page_count"`
	PageURL         string   `json:"page_url,omitempty"`
	Chapters        []int    `json:"chapters,omitempty"`
	HasNext         bool     `json:"has_next"`
	HasPrev         bool     `json:"has_prev"`
	Overlay         Overlay  `json:"overlay"`
	ControlsVisible bool     `json:"controls_visible"`
	AutoHide        bool     `json:"auto_hide"`
	Fullscreen      bool     `json:"fullscreen"`
	View            View     `json:"view"`
	Ended           bool     `json:"ended"`
}
