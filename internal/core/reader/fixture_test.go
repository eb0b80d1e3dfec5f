// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/library"
	"github.com/taibuivan/yomira-reader/internal/core/reader"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// chapters builds chapters numbered from 1 with the given page counts.
func chapters(mangaID string, pageCounts ...int) []*catalog.Chapter {
	out := make([]*catalog.Chapter, len(pageCounts))
	for i, count := range pageCounts {
		pages := make([]string, count)
		for p := range pages {
			pages[p] = fmt.Sprintf("https://cdn.test/%s/%d/%d.webp", mangaID, i+1, p+1)
		}
		out[i] = &catalog.Chapter{
			ID:      fmt.Sprintf("%s-ch%d", mangaID, i+1),
			MangaID: mangaID,
			Number:  i + 1,
			Title:   fmt.Sprintf("Chapter %d", i+1),
			Pages:   pages,
		}
	}
	return out
}

// content returns a catalogue service holding one title "m" with the given chapters.
func content(t *testing.T, pageCounts ...int) *catalog.Service {
	t.Helper()

	title := &catalog.Title{ID: "m", Title: "Shadow Chronicles", Status: catalog.StatusCompleted, TotalChapters: max(len(pageCounts), 1)}
	source, err := catalog.NewMemorySource([]*catalog.Title{title}, map[string][]*catalog.Chapter{"m": chapters("m", pageCounts...)})
	require.NoError(t, err)
	return catalog.NewService(source, nil, discard)
}

// # Fake scheduler

type fakeTimer struct {
	delay    time.Duration
	callback func()
	stopped  bool
	fired    bool
}

func (timer *fakeTimer) Stop() bool {
	active := !timer.stopped && !timer.fired
	timer.stopped = true
	return active
}

// fakeScheduler records timers and fires them only when told to.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (scheduler *fakeScheduler) AfterFunc(delay time.Duration, callback func()) reader.Timer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	timer := &fakeTimer{delay: delay, callback: callback}
	scheduler.timers = append(scheduler.timers, timer)
	return timer
}

// pending returns the timers that are armed and not stopped.
func (scheduler *fakeScheduler) pending() []*fakeTimer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	var active []*fakeTimer
	for _, timer := range scheduler.timers {
		if !timer.stopped && !timer.fired {
			active = append(active, timer)
		}
	}
	return active
}

// fire runs every pending timer, as if its delay elapsed.
func (scheduler *fakeScheduler) fire() int {
	active := scheduler.pending()
	for _, timer := range active {
		timer.fired = true
		timer.callback()
	}
	return len(active)
}

// # Session fixture

type harness struct {
	session   *reader.Session
	scheduler *fakeScheduler
	library   *library.Service
}

func newHarness(t *testing.T, chapter int, pageCounts ...int) *harness {
	t.Helper()

	scheduler := &fakeScheduler{}
	lib := library.NewService(library.NewMemoryStore(), library.Options{}, nil, discard)

	session := reader.NewSession("s1", "default", "m", chapter, reader.Dependencies{
		Content:     content(t, pageCounts...),
		Preferences: lib,
		Progress:    lib,
		Scheduler:   scheduler,
		Limits:      reader.DefaultLimits(),
		Logger:      discard,
	})
	t.Cleanup(session.Close)

	return &harness{session: session, scheduler: scheduler, library: lib}
}

func (h *harness) load(t *testing.T) reader.Snapshot {
	t.Helper()
	snapshot := h.session.Load(context.Background())
	require.Equal(t, reader.StatusReady, snapshot.Status, snapshot.Error)
	return snapshot
}

func (h *harness) apply(t *testing.T, event reader.Event) reader.Snapshot {
	t.Helper()
	snapshot, err := h.session.Apply(context.Background(), event)
	require.NoError(t, err)
	return snapshot
}

func at(chapter, page int) reader.Position {
	return reader.Position{Chapter: chapter, Page: page}
}
