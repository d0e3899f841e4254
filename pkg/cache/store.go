package cache

import (
	"context"
	"time"
)

// Store is a shared key-value cache with per-entry TTL.
// Concurrent writers to one key race; the last write wins.
type Store interface {
	// Get returns the stored bytes and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NopStore never holds anything; used when caching is disabled
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NopStore) Delete(context.Context, string) error {
	return nil
}
