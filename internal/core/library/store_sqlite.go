// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taibuivan/yomira-reader/internal/platform/database/schema"
	"github.com/taibuivan/yomira-reader/internal/platform/sqlite"
)

// SQLiteStore implements [Store] on an installation-local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var (
	kv = schema.LibraryKV

	createKVTable = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s BLOB NOT NULL,
			%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (%s, %s)
		)`, kv.Table, kv.Profile, kv.Key, kv.Value, kv.UpdatedAt, kv.Profile, kv.Key)

	selectKV = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? AND %s = ?`,
		kv.Value, kv.Table, kv.Profile, kv.Key)

	upsertKV = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s`,
		kv.Table, kv.Profile, kv.Key, kv.Value, kv.UpdatedAt,
		kv.Profile, kv.Key, kv.Value, kv.Value, kv.UpdatedAt, kv.UpdatedAt)

	deleteKV = fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s = ?`,
		kv.Table, kv.Profile, kv.Key)
)

// NewSQLiteStore wraps db and creates the key/value table when missing.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		return nil, fmt.Errorf("sqlite_library_migrate_failed: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (store *SQLiteStore) Get(context context.Context, scope, key string) ([]byte, bool, error) {
	var value []byte
	err := store.db.QueryRowContext(context, selectKV, scope, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite_library_get_failed: %w", err)
	}
	return value, true, nil
}

func (store *SQLiteStore) Set(context context.Context, scope, key string, value []byte) error {
	if _, err := store.db.ExecContext(context, upsertKV, scope, key, value); err != nil {
		return fmt.Errorf("sqlite_library_set_failed: %w", err)
	}
	return nil
}

func (store *SQLiteStore) Delete(context context.Context, scope, key string) error {
	if _, err := store.db.ExecContext(context, deleteKV, scope, key); err != nil {
		return fmt.Errorf("sqlite_library_delete_failed: %w", err)
	}
	return nil
}

func (store *SQLiteStore) Ping(context context.Context) error {
	return sqlite.Ping(context, store.db)
}
