package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries in Redis using plain string keys with EX expiry
type RedisStore struct {
	rc *redis.Client
}

func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rc.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache: %w", err)
	}
	return b, true, nil
}

// Set stores value under key; a ttl of zero or below never expires
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.rc.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rc.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Ping reports whether the Redis server is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rc.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rc.Close()
}
