package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore implements Store with an in-process sliding window. Not
// distributed; use the Redis store when running more than one replica.
type InMemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
}

// slidingWindow tracks request timestamps so bursts at window boundaries
// cannot double the effective limit.
type slidingWindow struct {
	timestamps []time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{buckets: make(map[string]*slidingWindow)}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sw, ok := s.buckets[key]
	if !ok {
		sw = &slidingWindow{}
		s.buckets[key] = sw
	}
	sw.expire(now.Add(-window))

	if len(sw.timestamps)+1 > limit {
		return &Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   sw.timestamps[0].Add(window),
			Limit:     limit,
		}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return &Result{
		Allowed:   true,
		Remaining: limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(window),
		Limit:     limit,
	}, nil
}

// expire drops timestamps that left the window.
func (w *slidingWindow) expire(cutoff time.Time) {
	idx := 0
	for idx < len(w.timestamps) && !w.timestamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		w.timestamps = w.timestamps[idx:]
	}
}
