// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-reader/internal/platform/ctxkey"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
)

const readerRoutePrefix = "/api/v1/reader/"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

/*
StructuredLogger logs one "http_request_finished" line per request and stores a
request-scoped logger in the context for handlers and respond.Error.

The level follows the status: 5xx logs at error, 4xx at warn, the rest at info.
Reader event traffic is chatty, so successful requests under /reader are
logged at debug.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			ctx := request.Context()

			// 1. Request-scoped logger
			attributes := []any{
				slog.String("request_id", ctxutil.GetRequestID(ctx)),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			}
			if profile, ok := ctx.Value(ctxkey.KeyProfile).(string); ok {
				attributes = append(attributes, slog.String("profile", profile))
			}
			requestLogger := logger.With(attributes...)

			ctx = ctxutil.WithLogger(ctx, requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			// 2. Serve
			next.ServeHTTP(recorder, request.WithContext(ctx))

			// 3. Summary line
			route := ""
			if routeCtx := chi.RouteContext(ctx); routeCtx != nil {
				route = routeCtx.RoutePattern()
			}

			requestLogger.Log(ctx, levelFor(recorder.status, route), "http_request_finished",
				slog.Int("status", recorder.status),
				slog.String("route", route),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			)
		})
	}
}

func levelFor(status int, route string) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case strings.HasPrefix(route, readerRoutePrefix):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
