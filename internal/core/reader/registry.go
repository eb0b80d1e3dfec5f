// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/yomira-reader/internal/core/library"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
	"github.com/taibuivan/yomira-reader/pkg/uuid"
)

// minSweepInterval keeps very short TTLs from spinning the janitor.
const minSweepInterval = time.Second

// Registry holds the live sessions of the process, keyed by session id.
type Registry struct {
	deps Dependencies
	ttl  time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry constructs a [Registry]. Sessions idle for longer than ttl are
// closed by [Registry.Run].
func NewRegistry(deps Dependencies, ttl time.Duration) *Registry {
	return &Registry{
		deps:     deps.withDefaults(),
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

/*
Open creates a session on (mangaID, chapter) and loads it.

Description: The session is registered even when its content turns out to be
unavailable, so the client can retry it.

Parameters:
  - ctx: context.Context (Bounds the initial load)
  - scope: string (Library profile)
  - mangaID: string
  - chapter: int (1-based)

Returns:
  - Snapshot: State after the initial load
  - error: VALIDATION_ERROR for a malformed request
*/
func (registry *Registry) Open(ctx context.Context, scope, mangaID string, chapter int) (Snapshot, error) {
	validator := &validate.Validator{}
	validator.
		Identifier("manga_id", mangaID, library.MaxMangaIDLength).
		Custom("chapter", chapter < 1, "must be at least 1")
	if err := validator.Err(); err != nil {
		return Snapshot{}, err
	}

	session := NewSession(uuid.New(), scope, mangaID, chapter, registry.deps)

	registry.mu.Lock()
	registry.sessions[session.ID()] = session
	registry.mu.Unlock()
	registry.deps.Metrics.SessionsActive(registry.Len())

	registry.deps.Logger.InfoContext(ctx, "reader_session_opened",
		slog.String("session_id", session.ID()),
		slog.String("manga_id", mangaID),
		slog.Int("chapter", chapter),
	)

	return session.Load(ctx), nil
}

// Get returns a live session, or NotFound.
func (registry *Registry) Get(id string) (*Session, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Reader session")
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	session, ok := registry.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Reader session")
	}
	return session, nil
}

// Apply forwards an event to a session. A session that ends itself (Escape
// with nothing left to close) is removed from the registry.
func (registry *Registry) Apply(ctx context.Context, id string, event Event) (Snapshot, error) {
	session, err := registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot, err := session.Apply(ctx, event)
	if err == nil && snapshot.Ended {
		registry.remove(session, "ended")
	}
	return snapshot, err
}

// Close ends and removes a session.
func (registry *Registry) Close(id string) error {
	session, err := registry.Get(id)
	if err != nil {
		return err
	}
	registry.remove(session, "closed")
	return nil
}

// Len returns the number of live sessions.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.sessions)
}

/*
Run closes idle sessions until ctx is cancelled, then closes every session.
It blocks; start it in its own goroutine.
*/
func (registry *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(max(registry.ttl/2, minSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			registry.closeAll()
			return
		case <-ticker.C:
			registry.Sweep(registry.deps.Now())
		}
	}
}

// Sweep closes sessions idle since before now-ttl and returns how many it closed.
func (registry *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-registry.ttl)

	registry.mu.RLock()
	var idle []*Session
	for _, session := range registry.sessions {
		if session.idleSince().Before(cutoff) {
			idle = append(idle, session)
		}
	}
	registry.mu.RUnlock()

	for _, session := range idle {
		registry.remove(session, "expired")
	}
	return len(idle)
}

func (registry *Registry) closeAll() {
	registry.mu.RLock()
	all := make([]*Session, 0, len(registry.sessions))
	for _, session := range registry.sessions {
		all = append(all, session)
	}
	registry.mu.RUnlock()

	for _, session := range all {
		registry.remove(session, "shutdown")
	}
}

func (registry *Registry) remove(session *Session, reason string) {
	session.Close()

	registry.mu.Lock()
	delete(registry.sessions, session.ID())
	remaining := len(registry.sessions)
	registry.mu.Unlock()

	registry.deps.Metrics.SessionsActive(remaining)
	registry.deps.Logger.Info("reader_session_closed",
		slog.String("session_id", session.ID()),
		slog.String("reason", reason),
	)
}
