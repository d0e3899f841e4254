package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Memoizer returns previously computed results for an identical key until the TTL runs out.
// There is no stampede protection: concurrent misses on one key all compute.
type Memoizer[T any] struct {
	store Store
	ttl   time.Duration
}

func NewMemoizer[T any](store Store, ttl time.Duration) *Memoizer[T] {
	return &Memoizer[T]{store: store, ttl: ttl}
}

// Do returns the cached value for key, or calls fn and caches its result.
// Errors from fn are not cached; store errors are returned.
func (m *Memoizer[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	b, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		var v T
		uerr := json.Unmarshal(b, &v)
		if uerr == nil {
			return v, nil
		}
		slog.Warn("Discarding undecodable cache entry", "key", key, "error", uerr)
	}

	v, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	b, err = json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal value for cache: %w", err)
	}
	if err := m.store.Set(ctx, key, b, m.ttl); err != nil {
		return zero, err
	}
	return v, nil
}

// Invalidate removes exactly one key
func (m *Memoizer[T]) Invalidate(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}
