// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// PanicRecovery turns a handler panic into a 500 INTERNAL_ERROR envelope and
// logs the stack. The request-scoped logger is preferred over logger.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// http.ErrAbortHandler is the documented way to abort a response
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctx := request.Context()
				reqLogger := ctxutil.GetLogger(ctx)
				if _, scoped := ctxutil.LoggerFrom(ctx); !scoped && logger != nil {
					reqLogger = logger
				}

				reqLogger.ErrorContext(ctx, "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}
