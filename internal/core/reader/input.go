// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"math"

	"github.com/taibuivan/yomira-reader/internal/core/library"
)

// SwipeThreshold is the horizontal distance, in pixels, a swipe must exceed.
const SwipeThreshold = 50.0

// Side is the physical side an input points to, before the reading direction
// is applied.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// Intent is what an input asks the session to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentPrev
	IntentNext
)

// KeySide maps a keyboard key (DOM key names) to a side.
func KeySide(key string) Side {
	switch key {
	case "ArrowLeft", "Left", "a":
		return SideLeft
	case "ArrowRight", "Right", "d":
		return SideRight
	}
	return SideNone
}

// ClickSide maps the horizontal click position, as a fraction of the page
// width, to the half it falls in. The exact centre belongs to the right half.
func ClickSide(x float64) Side {
	if x < 0.5 {
		return SideLeft
	}
	return SideRight
}

// SwipeSide maps a finger movement to the side it reveals: moving the finger
// to the left pulls in the page on the right. Mostly vertical or short swipes
// map to nothing.
func SwipeSide(dx, dy float64) Side {
	if math.Abs(dx) <= SwipeThreshold || math.Abs(dx) <= math.Abs(dy) {
		return SideNone
	}
	if dx < 0 {
		return SideRight
	}
	return SideLeft
}

// Resolve applies the reading direction: in rtl a left input advances.
func Resolve(side Side, direction library.Direction) Intent {
	switch side {
	case SideLeft:
		if direction == library.DirectionRTL {
			return IntentNext
		}
		return IntentPrev
	case SideRight:
		if direction == library.DirectionRTL {
			return IntentPrev
		}
		return IntentNext
	}
	return IntentNone
}
