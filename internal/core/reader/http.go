// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-reader/internal/platform/request"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer of reader sessions.
type Handler struct {
	registry *Registry
}

// NewHandler constructs a new reader [Handler].
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Routes returns a [chi.Router] with the session endpoints, mounted at /reader.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sessions", handler.openSession)
	router.Get("/sessions/{id}", handler.getSession)
	router.Post("/sessions/{id}/events", handler.applyEvent)
	router.Delete("/sessions/{id}", handler.closeSession)

	return router
}

// openRequest is the body of POST /sessions.
type openRequest struct {
	MangaID string `json:"manga_id"`
	Chapter int    `json:"chapter"`
}

/*
POST /api/v1/reader/sessions.

Description: Opens a session and loads its content. Unavailable content is not
an HTTP error: the snapshot carries status "unavailable" with the retry and
home actions.

Request (JSON):
  - manga_id: string
  - chapter: int (1-based, default 1)

Response:
  - 201: Snapshot
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) openSession(writer http.ResponseWriter, request *http.Request) {
	body := openRequest{Chapter: 1}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.registry.Open(request.Context(), requestutil.Profile(request), body.MangaID, body.Chapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, snapshot)
}

// GET /api/v1/reader/sessions/{id}.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.registry.Get(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.Snapshot())
}

/*
POST /api/v1/reader/sessions/{id}/events.

Request (JSON):
  - type: string (key, click, swipe, next_page, go_to_chapter, zoom_in, retry, ...)
  - key, x, dx, dy, chapter, page, zoom, brightness, direction, enabled: per type

Response:
  - 200: Snapshot
  - 404: NOT_FOUND (session or chapter), CONTENT_UNAVAILABLE
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) applyEvent(writer http.ResponseWriter, request *http.Request) {
	var event Event
	if err := requestutil.DecodeJSON(request, &event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.registry.Apply(request.Context(), requestutil.Param(request, "id"), event)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}

// DELETE /api/v1/reader/sessions/{id}.
func (handler *Handler) closeSession(writer http.ResponseWriter, request *http.Request) {
	if err := handler.registry.Close(requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
