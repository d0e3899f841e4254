package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Backend string

const (
	BackendNone   Backend = "none"
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// DefaultTTL applies when a Config carries no TTL
const DefaultTTL = 60 * time.Second

// Config selects and tunes the cache store. It is built once at startup and
// passed to every cache helper.
type Config struct {
	Backend    Backend
	TTL        time.Duration
	KeyPrefix  string
	// MaxEntries bounds the memory backend; zero means unbounded
	MaxEntries int
	Redis      RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewStore creates the Store selected by cfg.Backend. For Redis the server is pinged once.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendNone, "":
		return NopStore{}, nil
	case BackendMemory:
		return NewMemoryStore(cfg.TTL, cfg.MaxEntries), nil
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis cache backend requires an address")
		}
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s := NewRedisStore(rc)
		if err := s.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}
		slog.Info("Redis cache connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
