// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-reader/internal/platform/middleware"
)

var noop = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

/*
TestRequestID_GeneratesAndEchoes verifies a correlation ID is always present.
*/
func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	// 1. Generated when missing
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Client-provided IDs are preserved
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "abc", seen)
}

/*
TestProfile_Scoping checks header normalisation and the default profile.
*/
func TestProfile_Scoping(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing_header", "", constants.DefaultProfileID},
		{"plain", "tablet", "tablet"},
		{"normalised", "  Living Room TV ", "living-room-tv"},
		{"only_symbols", "***", constants.DefaultProfileID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := middleware.Profile()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ctxutil.GetProfile(r.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderXProfileID, tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestStructuredLogger_Fields logs the request summary with the resolved profile.
*/
func TestStructuredLogger_Fields(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))

	handler := middleware.Profile()(middleware.StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scoped := ctxutil.LoggerFrom(r.Context())
		assert.True(t, scoped)
		w.WriteHeader(http.StatusNotFound)
	})))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/titles/x", nil)
	request.Header.Set(constants.HeaderXProfileID, "Tablet")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "http_request_finished", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "tablet", line["profile"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
}

/*
TestRateLimit_RejectsBurst answers RATE_LIMITED once a client drains its bucket.
*/
func TestRateLimit_RejectsBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := middleware.RateLimit(ctx)(noop)

	serve := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	for n := 0; n < constants.DefaultRateLimitBurst; n++ {
		require.Equal(t, http.StatusOK, serve("192.0.2.1").Code)
	}

	var limited *httptest.ResponseRecorder
	for n := 0; n < 50; n++ {
		if recorder := serve("192.0.2.1"); recorder.Code == http.StatusTooManyRequests {
			limited = recorder
			break
		}
	}
	require.NotNil(t, limited)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), apperr.CodeRateLimited)

	// Buckets are per client
	assert.Equal(t, http.StatusOK, serve("192.0.2.2").Code)
}

/*
TestPanicRecovery_Returns500 ensures a panicking handler does not crash the server.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS_Origins allows every origin in development and only listed ones otherwise.
*/
func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name    string
		config  corsConfig
		origin  string
		allowed bool
	}{
		{"development", corsConfig{development: true}, "http://localhost:5173", true},
		{"listed", corsConfig{origins: []string{"https://reader.example"}}, "https://reader.example", true},
		{"unlisted", corsConfig{origins: []string{"https://reader.example"}}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/api/v1/titles", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			request.Header.Set("Access-Control-Request-Method", http.MethodGet)

			recorder := httptest.NewRecorder()
			middleware.CORS(tt.config)(noop).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
