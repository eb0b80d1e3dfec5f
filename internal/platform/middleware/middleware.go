// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

Chain order, as installed by the api package:

  - RequestID: correlation id for logs and the X-Request-ID header.
  - Profile: library profile (X-Profile-ID) resolved once for the whole request.
  - StructuredLogger: one slog line per request and a request-scoped logger.
  - RateLimit: per-client token bucket.
  - PanicRecovery: turns a panic into a 500 envelope.
  - CORS: origin allow-list for the browser front end.

Errors raised here use the same JSON envelope as the handlers (see respond.Error).
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-reader/pkg/slug"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request. A client-supplied
// X-Request-ID is kept so a front end can correlate its own retries.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// newRequestID prefers UUID v7 so ids sort by arrival time in the logs.
func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// # Library Scope

// Profile scopes the request to a library profile taken from the X-Profile-ID header.
// Profile identifiers are normalised into slugs so they are safe as storage keys;
// a missing or unusable header selects [constants.DefaultProfileID].
func Profile() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			profile := slug.From(request.Header.Get(constants.HeaderXProfileID))
			if profile == "" {
				profile = constants.DefaultProfileID
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithProfile(request.Context(), profile)))
		})
	}
}

// # Helpers

// RealIP extracts the client IP, trusting X-Real-IP then the first X-Forwarded-For hop.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
