// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import "github.com/taibuivan/yomira-reader/internal/core/library"

// EventType names one input of the navigation state machine.
type EventType string

const (
	// Raw input, mapped through the reading direction
	EventKey         EventType = "key"
	EventClick       EventType = "click"
	EventSwipe       EventType = "swipe"
	EventPointerMove EventType = "pointer_move"

	// Explicit navigation (buttons, slider, chapter list)
	EventNextPage    EventType = "next_page"
	EventPrevPage    EventType = "prev_page"
	EventGoToChapter EventType = "go_to_chapter"
	EventSetPage     EventType = "set_page"

	// Chrome
	EventOpenSettings     EventType = "open_settings"
	EventOpenChapterList  EventType = "open_chapter_list"
	EventCloseOverlay     EventType = "close_overlay"
	EventToggleControls   EventType = "toggle_controls"
	EventToggleFullscreen EventType = "toggle_fullscreen"

	// View transform
	EventZoomIn         EventType = "zoom_in"
	EventZoomOut        EventType = "zoom_out"
	EventZoomReset      EventType = "zoom_reset"
	EventSetZoom        EventType = "set_zoom"
	EventBrightnessUp   EventType = "brightness_up"
	EventBrightnessDown EventType = "brightness_down"
	EventSetBrightness  EventType = "set_brightness"
	EventSetDirection   EventType = "set_direction"
	EventSetAutoHide    EventType = "set_auto_hide"

	// Recovery
	EventRetry EventType = "retry"
)

// Special keys beyond the arrow keys.
const (
	KeySpace      = " "
	KeyEscape     = "Escape"
	KeyFullscreen = "f"
)

// Event is one input. Only the fields relevant to Type are read.
type Event struct {
	Type       EventType         `json:"type"`
	Key        string            `json:"key,omitempty"`
	X          float64           `json:"x,omitempty"`  // click position as a fraction of the page width
	DX         float64           `json:"dx,omitempty"` // swipe displacement in pixels
	DY         float64           `json:"dy,omitempty"`
	Chapter    int               `json:"chapter,omitempty"`
	Page       int               `json:"page,omitempty"`
	Zoom       float64           `json:"zoom,omitempty"`
	Brightness int               `json:"brightness,omitempty"`
	Direction  library.Direction `json:"direction,omitempty"`
	Enabled    *bool             `json:"enabled,omitempty"`
}
