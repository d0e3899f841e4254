package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory on an expirable LRU.
// Every entry lives at most the store TTL and is removed in the background
// once it expires, whether or not it is read again.
type MemoryStore struct {
	lru *expirable.LRU[string, memoryEntry]
	ttl time.Duration
}

// NewMemoryStore creates a store whose entries expire after ttl.
// A ttl of zero or below falls back to DefaultTTL, maxEntries of zero means unbounded.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, memoryEntry](maxEntries, nil, ttl),
		ttl: ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !time.Now().Before(e.expiresAt) {
		s.lru.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key. A ttl shorter than the store TTL is honored per entry,
// anything else expires with the store TTL.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 && ttl < s.ttl {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.lru.Add(key, e)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

// Len reports the entries currently held, expired ones not yet swept included
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
