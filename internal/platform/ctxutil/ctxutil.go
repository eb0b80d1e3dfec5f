// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by the middleware
// chain: correlation id, request logger and library profile.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/ctxkey"
)

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// LoggerFrom returns the request-scoped logger and whether one was attached.
func LoggerFrom(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	return logger, ok && logger != nil
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := LoggerFrom(ctx); ok {
		return logger
	}
	return slog.Default()
}

// # Library Scope

// WithProfile scopes ctx to a library profile.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyProfile, profile)
}

// GetProfile returns the library profile of ctx. Every request has one:
// without the Profile middleware it is [constants.DefaultProfileID].
func GetProfile(ctx context.Context) string {
	if profile, ok := ctx.Value(ctxkey.KeyProfile).(string); ok && profile != "" {
		return profile
	}
	return constants.DefaultProfileID
}
