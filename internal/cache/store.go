package cache

import (
	"context"
	"errors"
	"time"
)

// ErrDegraded marks a failure of the backing store. It is only logged: a
// degraded cache behaves as a miss and never fails a request.
var ErrDegraded = errors.New("cache degraded")

// Entry is a cached translation.
type Entry struct {
	Key            Key
	TranslatedText string
	CreatedAt      time.Time
	LastAccessAt   time.Time
}

// Store is a durable backing store for cache entries.
type Store interface {
	// Get returns the entry for key, or nil when absent.
	Get(ctx context.Context, key Key) (*Entry, error)
	// Put inserts or replaces the entry for entry.Key.
	Put(ctx context.Context, entry Entry) error
	// DeleteExpired removes entries created before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
