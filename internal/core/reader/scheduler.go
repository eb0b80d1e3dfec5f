// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay. Sessions take one so tests can
// drive the auto-hide timer by hand.
type Scheduler interface {
	AfterFunc(delay time.Duration, callback func()) Timer
}

// RealScheduler schedules on the runtime timers.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(delay time.Duration, callback func()) Timer {
	return time.AfterFunc(delay, callback)
}
