package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process CounterStore used in tests and store-less
// development. It provides the same atomic increment-and-check contract under
// a mutex but shares nothing across processes.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) IncrementAndCheck(_ context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}

	if e.count >= limit {
		return e.count, false, nil
	}
	e.count++

	if len(s.entries) > 1024 {
		s.prune(now)
	}

	return e.count, true, nil
}

// prune drops expired buckets. Caller must hold the mutex.
func (s *MemoryStore) prune(now time.Time) {
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Ping always succeeds; the store lives in-process.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
