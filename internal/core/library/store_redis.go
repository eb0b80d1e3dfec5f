// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	platformredis "github.com/taibuivan/yomira-reader/internal/platform/redis"
)

// RedisStore implements [Store] on Redis so several devices can share a profile.
// Keys are laid out as "library:<scope>:<key>" and never expire.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a new Redis-backed [Store].
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(scope, key string) string {
	return constants.RedisPrefixLibrary + scope + ":" + key
}

/*
Get reads a value.

Returns:
  - []byte: Raw value
  - bool: false when the key does not exist
  - error: Connectivity errors
*/
func (store *RedisStore) Get(context context.Context, scope, key string) ([]byte, bool, error) {
	value, err := store.client.Get(context, redisKey(scope, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_library_get_failed: %w", err)
	}
	return value, true, nil
}

// Set writes a value without expiry.
func (store *RedisStore) Set(context context.Context, scope, key string, value []byte) error {
	if err := store.client.Set(context, redisKey(scope, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis_library_set_failed: %w", err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (store *RedisStore) Delete(context context.Context, scope, key string) error {
	if err := store.client.Del(context, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("redis_library_delete_failed: %w", err)
	}
	return nil
}

func (store *RedisStore) Ping(context context.Context) error {
	return platformredis.Ping(context, store.client)
}
