// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/core/library"
	platformredis "github.com/taibuivan/yomira-reader/internal/platform/redis"
	"github.com/taibuivan/yomira-reader/internal/platform/sqlite"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newSQLiteStore(t *testing.T) *library.SQLiteStore {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:", discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := library.NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	return store
}

/*
TestStore_Contract runs the same behaviour checks against every backend.
Redis is only exercised when YOMIRA_TEST_REDIS_URL is set.
*/
func TestStore_Contract(t *testing.T) {
	stores := map[string]func(t *testing.T) library.Store{
		"memory": func(*testing.T) library.Store { return library.NewMemoryStore() },
		"sqlite": func(t *testing.T) library.Store { return newSQLiteStore(t) },
		"redis": func(t *testing.T) library.Store {
			url := os.Getenv("YOMIRA_TEST_REDIS_URL")
			if url == "" {
				t.Skip("YOMIRA_TEST_REDIS_URL not set")
			}
			client, err := platformredis.NewClient(context.Background(), url, discard)
			require.NoError(t, err)
			t.Cleanup(func() {
				client.FlushDB(context.Background())
				_ = client.Close()
			})
			return library.NewRedisStore(client)
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()

			require.NoError(t, store.Ping(ctx))

			_, found, err := store.Get(ctx, "p1", "missing")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, "p1", "k", []byte(`{"a":1}`)))
			require.NoError(t, store.Set(ctx, "p1", "k", []byte(`{"a":2}`)))

			value, found, err := store.Get(ctx, "p1", "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `{"a":2}`, string(value))

			_, found, err = store.Get(ctx, "p2", "k")
			require.NoError(t, err)
			assert.False(t, found, "scopes are isolated")

			require.NoError(t, store.Delete(ctx, "p1", "k"))
			require.NoError(t, store.Delete(ctx, "p1", "k"))
			_, found, err = store.Get(ctx, "p1", "k")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}
