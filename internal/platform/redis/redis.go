// Package redis builds the shared Redis client backing the signup rate
// limiter. Redis is optional: without a URL the service falls back to the
// in-process limiter.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis so callers depend on this package, not the driver.
type Client struct {
	*redis.Client
}

// New connects using a redis:// URL and verifies the connection before
// returning. A nil Client with nil error means Redis is not configured.
func New(ctx context.Context, url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	// The limiter issues short pipelined commands; a small pool with tight
	// timeouts keeps a slow Redis from stalling signups.
	opts.PoolSize = 8
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{Client: client}, nil
}

// Health reports whether the connection is usable.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
