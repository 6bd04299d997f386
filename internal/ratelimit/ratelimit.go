// Package ratelimit protects the public signup endpoint with a per-IP
// sliding window. The in-memory store is the single-process default; the
// Redis store makes the window shared across replicas.
package ratelimit

import (
	"context"
	"time"
)

// Result describes a rate limit decision.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// Store counts requests per key within a sliding window.
type Store interface {
	// Allow records one request for key and reports whether it fit within
	// limit for the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
