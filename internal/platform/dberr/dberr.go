// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level storage errors and
// higher-level application errors.
package dberr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// IsNoRows reports whether err means "no matching row or key" in any of the
// storage drivers used by the service.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, redis.Nil)
}

// Wrap inspects a storage error and wraps it into a meaningful [apperr.AppError].
//
// # Mapping
//
//   - Missing row / key: NotFound(resource)
//   - Cancelled or timed-out context: returned unchanged so callers can detect it
//   - Anything else: RequestFailed, with the action kept in the cause for logs
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if IsNoRows(err) {
		return apperr.NotFound(resource)
	}

	// 2. Caller gave up; not a storage fault
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// 3. Everything else is a rejected data source call
	return apperr.RequestFailed(fmt.Errorf("%s: %w", action, err))
}
