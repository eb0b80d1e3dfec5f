// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for the shared library store.

When several reader front ends share one profile (a phone and a tablet, say),
their reading settings, bookmarks and recently-read history live in Redis so
that every device sees the same state. The workload is many tiny GET/SET
calls, so the pool stays small and timeouts stay short.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

const (
	poolSize     = 8
	minIdleConns = 1
	opTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient connects to redisURL (redis:// or rediss://) and pings it, so a bad
// REDIS_URL aborts startup instead of surfacing on the first progress write.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = opTimeout
	options.ReadTimeout = opTimeout
	options.WriteTimeout = opTimeout
	// Request deadlines win over the static timeouts when they are shorter
	options.ContextTimeoutEnabled = true

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Bool("tls", options.TLSConfig != nil),
	)
	return client, nil
}

// Ping reports whether client answers within a short deadline. It backs the
// /ready probe and the library store health check.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
