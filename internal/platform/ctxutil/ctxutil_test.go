// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxutil"
)

/*
TestContext_Defaults checks what a bare context reports.
*/
func TestContext_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Equal(t, constants.DefaultProfileID, ctxutil.GetProfile(ctx))

	_, scoped := ctxutil.LoggerFrom(ctx)
	assert.False(t, scoped)
}

/*
TestContext_RoundTrip stores every request value and reads it back.
*/
func TestContext_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithProfile(ctx, "tablet-1")

	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Equal(t, "tablet-1", ctxutil.GetProfile(ctx))

	// An empty profile is treated as missing
	assert.Equal(t, constants.DefaultProfileID, ctxutil.GetProfile(ctxutil.WithProfile(ctx, "")))
}
