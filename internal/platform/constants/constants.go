// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across layers: server timing,
rate limits, header names, response field names and storage prefixes.

Tunable reader and library values (zoom and brightness bounds, history cap,
session TTL) are configuration, not constants; see the config package.
*/
package constants

import "time"

const (
	AppName    = "yomira-reader"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a whole request, including catalogue and store calls.
	// The PostgreSQL statement timeout is derived from it.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to drain on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// A reader session sends one event per page turn, so the per-client budget is
// generous; it only guards against runaway clients.
const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderXProfileID selects the library profile (installation scope).
	HeaderXProfileID = "X-Profile-ID"
)

// DefaultProfileID is the library profile of requests without X-Profile-ID.
const DefaultProfileID = "default"

// # Response Fields

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Storage Namespaces

const (
	// SchemaCatalog is the PostgreSQL schema of the catalogue tables.
	SchemaCatalog = "catalog"

	// RedisPrefixLibrary prefixes every library key: library:<profile>:<key>.
	RedisPrefixLibrary = "library:"
)
