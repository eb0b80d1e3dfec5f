// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seq issues monotonically increasing tokens to detect superseded work.

A caller takes a token before starting an asynchronous fetch and checks it when
the result arrives. If a newer token was issued in the meantime, or the tracker
was invalidated, the stale result is discarded instead of overwriting newer state.

Usage:

	token := tracker.Next()
	result := fetch()
	if !tracker.IsCurrent(token) {
	    return // superseded
	}
*/
package seq

import "sync/atomic"

// Token identifies one unit of work issued by a [Tracker].
type Token uint64

// Tracker hands out tokens. The zero value is ready to use and safe for
// concurrent use.
type Tracker struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding every token issued before it.
func (t *Tracker) Next() Token {
	return Token(t.latest.Add(1))
}

// IsCurrent reports whether token is still the most recently issued one.
func (t *Tracker) IsCurrent(token Token) bool {
	return t.latest.Load() == uint64(token)
}

// Invalidate supersedes every outstanding token without starting new work.
func (t *Tracker) Invalidate() {
	t.latest.Add(1)
}
