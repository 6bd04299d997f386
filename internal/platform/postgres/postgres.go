// Package postgres owns the shared database handle and schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// Handle is the lazily-initialized, process-wide database connection.
// Acquire is idempotent: the first call opens, pings and migrates; every
// subsequent call reuses the same *sql.DB. This replaces the usual global
// "is the store connected" flag with an injectable resource.
type Handle struct {
	dsn  string
	once sync.Once
	db   *sql.DB
	err  error
}

// NewHandle prepares a handle without connecting. The connection is
// established on first Acquire.
func NewHandle(dsn string) *Handle {
	return &Handle{dsn: dsn}
}

// Acquire returns the shared connection, opening it on first use.
func (h *Handle) Acquire(ctx context.Context) (*sql.DB, error) {
	h.once.Do(func() {
		h.db, h.err = open(ctx, h.dsn)
	})
	return h.db, h.err
}

// Close releases the shared connection if it was ever opened.
func (h *Handle) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
