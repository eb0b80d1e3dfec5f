// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/library"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/telemetry"
	"github.com/taibuivan/yomira-reader/pkg/seq"
)

// # Collaborators

// Content resolves titles and chapter lists. [catalog.Service] satisfies it.
type Content interface {
	GetTitle(ctx context.Context, id string) (*catalog.Title, error)
	ListChapters(ctx context.Context, titleID string) ([]*catalog.Chapter, error)
}

// Preferences reads and writes reading settings. [library.Service] satisfies it.
type Preferences interface {
	Settings(ctx context.Context, scope string) (library.Settings, error)
	SaveSettings(ctx context.Context, scope string, settings library.Settings) error
}

// ProgressRecorder upserts the last-read position. [library.Service] satisfies it.
type ProgressRecorder interface {
	RecordProgress(ctx context.Context, scope, mangaID string, chapter, page int) (library.Progress, error)
}

// Dependencies are shared by every session of a [Registry].
type Dependencies struct {
	Content     Content
	Preferences Preferences
	Progress    ProgressRecorder
	Scheduler   Scheduler
	Limits      Limits
	Metrics     *telemetry.Metrics
	Logger      *slog.Logger
	Now         func() time.Time
}

func (deps Dependencies) withDefaults() Dependencies {
	if deps.Scheduler == nil {
		deps.Scheduler = RealScheduler{}
	}
	if deps.Limits == (Limits{}) {
		deps.Limits = DefaultLimits()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}

// # Session

// Session is one reader opened on a (title, chapter) pair.
type Session struct {
	id        string
	scope     string
	mangaID   string
	requested int
	deps      Dependencies

	loads seq.Tracker

	mu         sync.Mutex
	status     Status
	failure    string
	title      *catalog.Title
	navigator  *Navigator
	overlay    Overlay
	controls   bool
	fullscreen bool
	autoHide   bool
	view       View
	ended      bool
	closed     bool
	lastActive time.Time

	hideTimer      Timer
	hideGeneration uint64

	// Store writes are queued under mu and issued by flush after it is released.
	pending      pendingWrites
	writeVersion uint64

	writeMu         sync.Mutex
	flushedProgress uint64
	flushedSettings uint64
}

// pendingWrites holds the latest unsent progress and settings. Each carries the
// version it was queued at so an older write never lands after a newer one.
type pendingWrites struct {
	progress *progressWrite
	settings *settingsWrite
}

type progressWrite struct {
	version  uint64
	position Position
}

type settingsWrite struct {
	version    uint64
	brightness int
	direction  library.Direction
	autoHide   bool
}

// NewSession creates a session in the loading state. Call [Session.Load] to fetch content.
func NewSession(id, scope, mangaID string, chapter int, deps Dependencies) *Session {
	deps = deps.withDefaults()

	return &Session{
		id:         id,
		scope:      scope,
		mangaID:    mangaID,
		requested:  chapter,
		deps:       deps,
		status:     StatusLoading,
		overlay:    OverlayNone,
		controls:   true,
		autoHide:   true,
		view:       View{Zoom: ZoomReset, Brightness: deps.Limits.clampBrightness(100), Direction: library.DirectionLTR},
		lastActive: deps.Now(),
	}
}

// ID returns the session id.
func (session *Session) ID() string { return session.id }

// Scope returns the library profile the session records progress for.
func (session *Session) Scope() string { return session.scope }

// # Loading

/*
Load fetches the title and its chapters concurrently and positions the session
at page 0 of the requested chapter.

Description: The result is applied only if no newer load started and the
session was not closed meanwhile; otherwise it is dropped. Failures put the
session in the unavailable state, which is reported in the snapshot rather than
as an error.

Returns:
  - Snapshot: State after the load
*/
func (session *Session) Load(ctx context.Context) Snapshot {
	token := session.loads.Next()

	session.mu.Lock()
	if session.closed {
		defer session.mu.Unlock()
		return session.snapshot()
	}
	session.status = StatusLoading
	session.failure = ""
	session.mu.Unlock()

	// 1. Fetch title and chapters side by side
	var (
		title    *catalog.Title
		chapters []*catalog.Chapter
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		title, err = session.deps.Content.GetTitle(groupCtx, session.mangaID)
		return err
	})
	group.Go(func() (err error) {
		chapters, err = session.deps.Content.ListChapters(groupCtx, session.mangaID)
		return err
	})
	loadErr := group.Wait()

	settings := library.DefaultSettings()
	if loadErr == nil {
		settings = session.loadSettings(ctx)
	}

	session.mu.Lock()
	snapshot := session.finishLoad(ctx, token, title, chapters, settings, loadErr)
	writes := session.takeWrites()
	session.mu.Unlock()

	session.flush(ctx, writes)
	return snapshot
}

// finishLoad applies a load result. It must be called with mu held.
func (session *Session) finishLoad(ctx context.Context, token seq.Token, title *catalog.Title, chapters []*catalog.Chapter, settings library.Settings, loadErr error) Snapshot {

	// 2. Drop superseded or abandoned results
	if session.closed || !session.loads.IsCurrent(token) || ctx.Err() != nil {
		session.deps.Logger.DebugContext(ctx, "reader_load_discarded", slog.String("session_id", session.id))
		return session.snapshot()
	}

	if loadErr != nil {
		session.fail(ctx, loadErr)
		return session.snapshot()
	}

	navigator, err := NewNavigator(chapters, session.requested)
	if err != nil {
		session.fail(ctx, err)
		return session.snapshot()
	}

	// 3. Ready: adopt the stored preferences and record the opening position
	session.title = title
	session.navigator = navigator
	session.status = StatusReady
	session.view.Brightness = session.deps.Limits.clampBrightness(settings.Brightness)
	session.view.Direction = settings.ReadingDirection
	session.autoHide = settings.AutoHideControls
	session.activity()
	session.queueProgress()

	session.deps.Logger.InfoContext(ctx, "reader_session_ready",
		slog.String("session_id", session.id),
		slog.String("manga_id", session.mangaID),
		slog.Int("chapter", navigator.Position().Chapter),
	)
	return session.snapshot()
}

// Retry reloads a session that is unavailable or whose load was abandoned.
// A ready session is returned unchanged.
func (session *Session) Retry(ctx context.Context) (Snapshot, error) {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return Snapshot{}, apperr.NotFound("Reader session")
	}
	if session.status == StatusReady {
		defer session.mu.Unlock()
		return session.snapshot(), nil
	}
	session.lastActive = session.deps.Now()
	session.mu.Unlock()

	session.deps.Metrics.ReaderEvent(string(EventRetry))
	return session.Load(ctx), nil
}

func (session *Session) loadSettings(ctx context.Context) library.Settings {
	if session.deps.Preferences == nil {
		return library.DefaultSettings()
	}

	settings, err := session.deps.Preferences.Settings(ctx, session.scope)
	if err != nil {
		session.deps.Logger.WarnContext(ctx, "reader_settings_unavailable",
			slog.String("session_id", session.id),
			slog.Any("error", err),
		)
		return library.DefaultSettings()
	}
	return settings
}

// fail enters the unavailable state. Stale content is dropped so it is never shown.
func (session *Session) fail(ctx context.Context, err error) {
	session.status = StatusUnavailable
	session.title = nil
	session.navigator = nil
	session.overlay = OverlayNone
	session.controls = true
	session.stopHide()

	session.failure = "The data source could not complete the request"
	if appErr := apperr.As(err); appErr != nil && appErr.Code != apperr.CodeRequestFailed {
		session.failure = appErr.Message
	}

	session.deps.Logger.WarnContext(ctx, "reader_content_unavailable",
		slog.String("session_id", session.id),
		slog.String("manga_id", session.mangaID),
		slog.Int("chapter", session.requested),
		slog.Any("error", err),
	)
}

// # Events

/*
Apply runs one event through the state machine.

Returns:
  - Snapshot: State after the event (unchanged when an error is returned)
  - error: CONTENT_UNAVAILABLE when the session is not ready, NotFound for an
    unknown chapter, VALIDATION_ERROR for malformed events
*/
func (session *Session) Apply(ctx context.Context, event Event) (Snapshot, error) {
	if event.Type == EventRetry {
		return session.Retry(ctx)
	}

	session.mu.Lock()
	snapshot, err := session.apply(event)
	writes := session.takeWrites()
	session.mu.Unlock()

	session.flush(ctx, writes)
	return snapshot, err
}

// apply runs the event with mu held.
func (session *Session) apply(event Event) (Snapshot, error) {
	if session.closed {
		return Snapshot{}, apperr.NotFound("Reader session")
	}
	session.lastActive = session.deps.Now()

	if session.status != StatusReady {
		message := session.failure
		if message == "" {
			message = "Content is still loading"
		}
		return session.snapshot(), apperr.ContentUnavailable(message)
	}

	before := session.navigator.Position()
	if err := session.dispatch(event); err != nil {
		return session.snapshot(), err
	}
	session.deps.Metrics.ReaderEvent(string(event.Type))

	if session.navigator.Position() != before {
		session.activity()
		session.queueProgress()
	}
	return session.snapshot(), nil
}

func (session *Session) dispatch(event Event) error {
	limits := session.deps.Limits

	switch event.Type {

	// # Raw input
	case EventKey:
		return session.key(event.Key)
	case EventClick:
		if event.X < 0 || event.X > 1 || math.IsNaN(event.X) {
			return invalidEvent("x", "must be between 0 and 1")
		}
		if session.overlay != OverlayNone {
			return nil
		}
		session.intent(Resolve(ClickSide(event.X), session.view.Direction))
	case EventSwipe:
		session.activity()
		if session.overlay != OverlayNone {
			return nil
		}
		session.intent(Resolve(SwipeSide(event.DX, event.DY), session.view.Direction))
	case EventPointerMove:
		session.activity()

	// # Explicit navigation
	case EventNextPage:
		session.activity()
		session.navigator.Next()
	case EventPrevPage:
		session.activity()
		session.navigator.Prev()
	case EventGoToChapter:
		if err := session.navigator.GoToChapter(event.Chapter); err != nil {
			return err
		}
		if session.overlay == OverlayChapterList {
			session.overlay = OverlayNone
		}
		session.activity()
	case EventSetPage:
		if err := session.navigator.SetPage(event.Page); err != nil {
			return err
		}
		session.activity()

	// # Chrome
	case EventOpenSettings:
		session.openOverlay(OverlaySettings)
	case EventOpenChapterList:
		session.openOverlay(OverlayChapterList)
	case EventCloseOverlay:
		session.overlay = OverlayNone
		session.activity()
	case EventToggleControls:
		session.toggleControls()
	case EventToggleFullscreen:
		session.fullscreen = !session.fullscreen
		session.activity()

	// # View transform
	case EventZoomIn:
		session.view.Zoom = limits.clampZoom(session.view.Zoom + limits.ZoomStep)
	case EventZoomOut:
		session.view.Zoom = limits.clampZoom(session.view.Zoom - limits.ZoomStep)
	case EventZoomReset:
		session.view.Zoom = ZoomReset
	case EventSetZoom:
		if math.IsNaN(event.Zoom) || math.IsInf(event.Zoom, 0) {
			return invalidEvent("zoom", "must be a finite number")
		}
		session.view.Zoom = limits.clampZoom(event.Zoom)
	case EventBrightnessUp:
		session.setBrightness(session.view.Brightness+limits.BrightnessStep)
	case EventBrightnessDown:
		session.setBrightness(session.view.Brightness-limits.BrightnessStep)
	case EventSetBrightness:
		session.setBrightness(event.Brightness)
	case EventSetDirection:
		if event.Direction != library.DirectionLTR && event.Direction != library.DirectionRTL {
			return invalidEvent("direction", "must be one of: ltr, rtl")
		}
		session.view.Direction = event.Direction
		session.queueSettings()
	case EventSetAutoHide:
		if event.Enabled == nil {
			return invalidEvent("enabled", "is required")
		}
		session.autoHide = *event.Enabled
		session.activity()
		session.queueSettings()

	default:
		return invalidEvent("type", fmt.Sprintf("unknown event type %q", event.Type))
	}

	return nil
}

// key handles a keyboard press. Escape unwinds overlay, then fullscreen, then
// ends the session. Navigation keys are ignored while an overlay is open.
func (session *Session) key(key string) error {
	session.activity()

	if key == KeyEscape {
		switch {
		case session.overlay != OverlayNone:
			session.overlay = OverlayNone
			session.activity()
		case session.fullscreen:
			session.fullscreen = false
		default:
			session.ended = true
		}
		return nil
	}

	if session.overlay != OverlayNone {
		return nil
	}

	switch key {
	case KeySpace, "Space":
		session.navigator.Next()
	case KeyFullscreen:
		session.fullscreen = !session.fullscreen
	default:
		session.intent(Resolve(KeySide(key), session.view.Direction))
	}
	return nil
}

func (session *Session) intent(intent Intent) {
	switch intent {
	case IntentNext:
		session.activity()
		session.navigator.Next()
	case IntentPrev:
		session.activity()
		session.navigator.Prev()
	}
}

func (session *Session) openOverlay(overlay Overlay) {
	session.overlay = overlay
	session.controls = true
	session.stopHide()
}

func (session *Session) toggleControls() {
	if session.controls {
		session.controls = false
		session.stopHide()
		return
	}
	session.activity()
}

func (session *Session) setBrightness(brightness int) {
	session.view.Brightness = session.deps.Limits.clampBrightness(brightness)
	session.queueSettings()
}

// # Auto-hide

// activity shows the controls and restarts the inactivity timer.
func (session *Session) activity() {
	session.controls = true
	session.armHide()
}

// armHide replaces any pending timer. It arms nothing while an overlay is
// open or auto-hide is disabled.
func (session *Session) armHide() {
	session.stopHide()
	if !session.autoHide || session.overlay != OverlayNone || session.closed || session.status != StatusReady {
		return
	}

	generation := session.hideGeneration
	session.hideTimer = session.deps.Scheduler.AfterFunc(session.deps.Limits.AutoHideDelay, func() {
		session.hide(generation)
	})
}

func (session *Session) stopHide() {
	if session.hideTimer != nil {
		session.hideTimer.Stop()
		session.hideTimer = nil
	}
	// A callback that already fired but has not taken the lock yet becomes stale.
	session.hideGeneration++
}

func (session *Session) hide(generation uint64) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed || generation != session.hideGeneration || session.overlay != OverlayNone {
		return
	}
	session.controls = false
	session.hideTimer = nil
}

// # Side effects

// queueProgress schedules the current position for the progress history.
func (session *Session) queueProgress() {
	if session.deps.Progress == nil {
		return
	}
	session.writeVersion++
	session.pending.progress = &progressWrite{version: session.writeVersion, position: session.navigator.Position()}
}

// queueSettings schedules brightness, direction and auto-hide as the profile's reading settings.
func (session *Session) queueSettings() {
	if session.deps.Preferences == nil {
		return
	}
	session.writeVersion++
	session.pending.settings = &settingsWrite{
		version:    session.writeVersion,
		brightness: session.view.Brightness,
		direction:  session.view.Direction,
		autoHide:   session.autoHide,
	}
}

// takeWrites hands over the queued writes. It must be called with mu held.
func (session *Session) takeWrites() pendingWrites {
	writes := session.pending
	session.pending = pendingWrites{}
	return writes
}

/*
flush issues queued store writes without holding mu, so a slow store never
blocks snapshots or the hide timer. Failures are logged and never surface to
the caller.
*/
func (session *Session) flush(ctx context.Context, writes pendingWrites) {
	if writes.progress == nil && writes.settings == nil {
		return
	}

	session.writeMu.Lock()
	defer session.writeMu.Unlock()

	if write := writes.progress; write != nil && write.version > session.flushedProgress {
		session.flushedProgress = write.version
		session.writeProgress(ctx, write.position)
	}
	if write := writes.settings; write != nil && write.version > session.flushedSettings {
		session.flushedSettings = write.version
		session.writeSettings(ctx, write)
	}
}

func (session *Session) writeProgress(ctx context.Context, position Position) {
	if _, err := session.deps.Progress.RecordProgress(ctx, session.scope, session.mangaID, position.Chapter, position.Page); err != nil {
		session.deps.Logger.WarnContext(ctx, "progress_record_failed",
			slog.String("session_id", session.id),
			slog.String("manga_id", session.mangaID),
			slog.Int("chapter", position.Chapter),
			slog.Int("page", position.Page),
			slog.Any("error", err),
		)
	}
}

func (session *Session) writeSettings(ctx context.Context, write *settingsWrite) {
	settings := session.loadSettings(ctx)
	settings.Brightness = write.brightness
	settings.ReadingDirection = write.direction
	settings.AutoHideControls = write.autoHide

	if err := session.deps.Preferences.SaveSettings(ctx, session.scope, settings); err != nil {
		session.deps.Logger.WarnContext(ctx, "reader_settings_save_failed",
			slog.String("session_id", session.id),
			slog.Any("error", err),
		)
	}
}

// # Lifecycle

// Snapshot returns a copy of the current state.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot()
}

// Close ends the session. Outstanding loads are discarded and timers stopped.
func (session *Session) Close() {
	session.loads.Invalidate()

	session.mu.Lock()
	defer session.mu.Unlock()

	session.closed = true
	session.stopHide()
}

// idleSince reports when the session last received an event.
func (session *Session) idleSince() time.Time {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.lastActive
}

func (session *Session) snapshot() Snapshot {
	snapshot := Snapshot{
		ID:              session.id,
		MangaID:         session.mangaID,
		Status:          session.status,
		Overlay:         session.overlay,
		ControlsVisible: session.controls,
		AutoHide:        session.autoHide,
		Fullscreen:      session.fullscreen,
		View:            session.view,
		Ended:           session.ended,
		Position:        Position{Chapter: session.requested},
	}

	switch session.status {
	case StatusUnavailable:
		snapshot.Error = session.failure
		snapshot.Actions = []Action{ActionRetry, ActionHome}
	case StatusReady:
		snapshot.Title = session.title.Title
		snapshot.Position = session.navigator.Position()
		snapshot.PageCount = session.navigator.PageCount()
		snapshot.PageURL = session.navigator.PageURL()
		snapshot.Chapters = session.navigator.Chapters()
		snapshot.HasNext = session.navigator.HasNext()
		snapshot.HasPrev = session.navigator.HasPrev()
	}
	return snapshot
}

func invalidEvent(field, message string) error {
	return apperr.ValidationError("Invalid reader event", apperr.FieldError{Field: field, Message: message})
}
