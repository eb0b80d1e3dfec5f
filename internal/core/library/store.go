// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"sync"
)

// # Store Interface

// Store is a scoped key/value surface. A scope is one profile/installation.
//
// Get reports found=false for a missing key; that is not an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, scope, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, scope, key string, value []byte) error
	Delete(ctx context.Context, scope, key string) error
	Ping(ctx context.Context) error
}

// # Memory Store

// MemoryStore keeps everything in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string][]byte
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scopes: make(map[string]map[string][]byte)}
}

func (store *MemoryStore) Get(_ context.Context, scope, key string) ([]byte, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.scopes[scope][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (store *MemoryStore) Set(_ context.Context, scope, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, ok := store.scopes[scope]
	if !ok {
		entries = make(map[string][]byte)
		store.scopes[scope] = entries
	}
	entries[key] = append([]byte(nil), value...)
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, scope, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.scopes[scope], key)
	return nil
}

func (store *MemoryStore) Ping(context.Context) error { return nil }
