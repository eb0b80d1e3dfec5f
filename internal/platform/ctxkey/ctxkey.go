// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the typed keys under which the middleware chain stores
// per-request values. Read and write them through ctxutil.
package ctxkey

// key is unexported so no other package can build a colliding key.
type key uint8

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = iota + 1

	// KeyProfile holds the slugified library profile.
	KeyProfile

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger
)
