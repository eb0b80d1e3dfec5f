// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer of the library. Every route is scoped to
// the profile resolved by the Profile middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the library endpoints, mounted at /library.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/settings", handler.getSettings)
	router.Put("/settings", handler.saveSettings)

	router.Get("/progress", handler.listProgress)
	router.Get("/progress/{mangaID}", handler.getProgress)
	router.Put("/progress/{mangaID}", handler.recordProgress)

	router.Get("/bookmarks/{mangaID}", handler.getBookmark)
	router.Put("/bookmarks/{mangaID}", handler.setBookmark)
	router.Delete("/bookmarks/{mangaID}", handler.deleteBookmark)

	return router
}

// # Settings

// GET /api/v1/library/settings.
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.service.Settings(request.Context(), requestutil.Profile(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

/*
PUT /api/v1/library/settings.

Request (JSON):
  - brightness: int
  - reading_direction: string (ltr, rtl)
  - page_display: string (single, double)
  - auto_hide_controls: bool
  - page_transition: string (slide, fade, none)

Response:
  - 200: Settings
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) saveSettings(writer http.ResponseWriter, request *http.Request) {
	settings := DefaultSettings()
	if err := requestutil.DecodeJSON(request, &settings); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveSettings(request.Context(), requestutil.Profile(request), settings); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

// # Progress

// GET /api/v1/library/progress.
func (handler *Handler) listProgress(writer http.ResponseWriter, request *http.Request) {
	history, err := handler.service.Progress(request.Context(), requestutil.Profile(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, history)
}

// GET /api/v1/library/progress/{mangaID}.
func (handler *Handler) getProgress(writer http.ResponseWriter, request *http.Request) {
	progress, err := handler.service.ProgressFor(request.Context(), requestutil.Profile(request), requestutil.Param(request, "mangaID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

// progressRequest is the body of PUT /progress/{mangaID}.
type progressRequest struct {
	Chapter int `json:"chapter"`
	Page    int `json:"page"`
}

/*
PUT /api/v1/library/progress/{mangaID}.

Description: Records a position read outside a server-side reader session.

Request (JSON):
  - chapter: int (1-based)
  - page: int (0-based)
*/
func (handler *Handler) recordProgress(writer http.ResponseWriter, request *http.Request) {
	var body progressRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.RecordProgress(request.Context(), requestutil.Profile(request),
		requestutil.Param(request, "mangaID"), body.Chapter, body.Page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

// # Bookmarks

type bookmarkResponse struct {
	MangaID    string `json:"manga_id"`
	Bookmarked bool   `json:"bookmarked"`
}

// GET /api/v1/library/bookmarks/{mangaID}.
func (handler *Handler) getBookmark(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.Param(request, "mangaID")

	bookmarked, err := handler.service.IsBookmarked(request.Context(), requestutil.Profile(request), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookmarkResponse{MangaID: mangaID, Bookmarked: bookmarked})
}

// PUT /api/v1/library/bookmarks/{mangaID}.
func (handler *Handler) setBookmark(writer http.ResponseWriter, request *http.Request) {
	handler.writeBookmark(writer, request, true)
}

// DELETE /api/v1/library/bookmarks/{mangaID}.
func (handler *Handler) deleteBookmark(writer http.ResponseWriter, request *http.Request) {
	handler.writeBookmark(writer, request, false)
}

func (handler *Handler) writeBookmark(writer http.ResponseWriter, request *http.Request, bookmarked bool) {
	mangaID := requestutil.Param(request, "mangaID")

	if err := handler.service.SetBookmark(request.Context(), requestutil.Profile(request), mangaID, bookmarked); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookmarkResponse{MangaID: mangaID, Bookmarked: bookmarked})
}
