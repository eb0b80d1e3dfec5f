// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seq_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/seq"
)

/*
TestTracker_Supersession ensures only the latest token is current.
*/
func TestTracker_Supersession(t *testing.T) {
	var tracker seq.Tracker

	first := tracker.Next()
	assert.True(t, tracker.IsCurrent(first))

	second := tracker.Next()
	assert.False(t, tracker.IsCurrent(first))
	assert.True(t, tracker.IsCurrent(second))

	tracker.Invalidate()
	assert.False(t, tracker.IsCurrent(second))
}

/*
TestTracker_Concurrent verifies that concurrent issuers never share a token.
*/
func TestTracker_Concurrent(t *testing.T) {
	var (
		tracker seq.Tracker
		mu      sync.Mutex
		wg      sync.WaitGroup
		seen    = map[seq.Token]bool{}
	)

	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := tracker.Next()
			mu.Lock()
			seen[token] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
