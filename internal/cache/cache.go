// Package cache stores translations keyed by a fingerprint of their input.
//
// Entries live in a bounded in-memory LRU with TTL expiry, optionally backed by
// a durable Store. Store failures never surface to callers: the cache degrades
// to a miss and logs the failure.
package cache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	DefaultTTL             = time.Hour
	DefaultMaxEntries      = 10000
	DefaultSweepInterval   = time.Minute
	DefaultStoreTimeout    = 50 * time.Millisecond
	DefaultBreakerFailures = 5
	DefaultBreakerCooldown = 30 * time.Second
)

// Options configures a Cache. Zero values fall back to the defaults above.
type Options struct {
	TTL           time.Duration
	MaxEntries    int
	SweepInterval time.Duration

	// Store is optional. Without it the cache is memory only.
	Store           Store
	StoreTimeout    time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration

	Logger *zap.Logger
	Now    func() time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	items map[Key]*list.Element
	// front is the most recently used entry
	lru *list.List

	ttl           time.Duration
	maxEntries    int
	sweepInterval time.Duration

	store        Store
	storeTimeout time.Duration
	breaker      *gobreaker.CircuitBreaker

	logger *zap.Logger
	now    func() time.Time
}

// New creates a cache.
func New(opts Options) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = DefaultStoreTimeout
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = DefaultBreakerFailures
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = DefaultBreakerCooldown
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Cache{
		items:         make(map[Key]*list.Element),
		lru:           list.New(),
		ttl:           opts.TTL,
		maxEntries:    opts.MaxEntries,
		sweepInterval: opts.SweepInterval,
		store:         opts.Store,
		storeTimeout:  opts.StoreTimeout,
		logger:        opts.Logger,
		now:           opts.Now,
	}
	if c.store != nil {
		failures := opts.BreakerFailures
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "cache-store",
			MaxRequests: 1,
			Timeout:     opts.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			// A caller that went away says nothing about the store's health.
			// Store timeouts still count as failures.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("cache store breaker changed state",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}
	return c
}

// Get returns the entry for key. Expired entries are absent and purged.
func (c *Cache) Get(ctx context.Context, key Key) (Entry, bool) {
	if entry, ok := c.getMemory(key); ok {
		return entry, true
	}
	if c.store == nil {
		return Entry{}, false
	}

	entry, err := c.loadFromStore(ctx, key)
	if err != nil {
		c.logStoreError("cache lookup degraded to miss", err, zap.String("key", string(key)))
		return Entry{}, false
	}
	if entry == nil || c.expired(*entry, c.now()) {
		return Entry{}, false
	}

	entry.Key = key
	return c.promote(*entry), true
}

// promote inserts a store entry unless a Put for the same key landed while
// the store was being read; the in-memory value is newer and wins.
func (c *Cache) promote(entry Entry) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.items[entry.Key]; ok {
		current := elem.Value.(*Entry)
		if !c.expired(*current, now) {
			current.LastAccessAt = now
			c.lru.MoveToFront(elem)
			return *current
		}
	}
	entry.LastAccessAt = now
	c.insertLocked(entry)
	return entry
}

// Put stores text under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key Key, text string) {
	now := c.now()
	entry := Entry{
		Key:            key,
		TranslatedText: text,
		CreatedAt:      now,
		LastAccessAt:   now,
	}

	c.mu.Lock()
	c.insertLocked(entry)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.saveToStore(ctx, entry); err != nil {
		c.logStoreError("cache write dropped", err, zap.String("key", string(key)))
	}
}

// Len returns the number of entries held in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Sweep removes expired entries from memory and from the store.
func (c *Cache) Sweep(ctx context.Context) int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		entry := elem.Value.(*Entry)
		if c.expired(*entry, now) {
			c.lru.Remove(elem)
			delete(c.items, entry.Key)
			removed++
		}
		elem = prev
	}
	c.mu.Unlock()

	if c.store != nil {
		deleted, err := c.deleteExpiredFromStore(ctx, now.Add(-c.ttl))
		if err != nil {
			c.logStoreError("cache store sweep failed", err)
		} else if deleted > 0 {
			c.logger.Debug("cache store swept", zap.Int64("deleted", deleted))
		}
	}
	return removed
}

// Run sweeps expired entries periodically until ctx is done.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(ctx); removed > 0 {
				c.logger.Debug("cache swept", zap.Int("removed", removed))
			}
		}
	}
}

// Close releases the backing store.
func (c *Cache) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Cache) getMemory(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return Entry{}, false
	}
	entry := elem.Value.(*Entry)
	now := c.now()
	if c.expired(*entry, now) {
		c.lru.Remove(elem)
		delete(c.items, key)
		return Entry{}, false
	}
	entry.LastAccessAt = now
	c.lru.MoveToFront(elem)
	return *entry, true
}

// insertLocked adds or replaces an entry and evicts the least recently used
// entries beyond capacity. Entries are ordered by last access, so among equal
// access times the earliest created is evicted first. c.mu must be held.
func (c *Cache) insertLocked(entry Entry) {
	if elem, ok := c.items[entry.Key]; ok {
		*elem.Value.(*Entry) = entry
		c.lru.MoveToFront(elem)
		return
	}

	for c.lru.Len() >= c.maxEntries {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*Entry).Key)
	}

	e := entry
	c.items[entry.Key] = c.lru.PushFront(&e)
}

// logStoreError logs at debug while the breaker rejects calls; its state
// change is already logged once.
func (c *Cache) logStoreError(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Debug(msg, fields...)
		return
	}
	c.logger.Warn(msg, fields...)
}

func (c *Cache) expired(entry Entry, now time.Time) bool {
	return now.Sub(entry.CreatedAt) > c.ttl
}

func (c *Cache) loadFromStore(ctx context.Context, key Key) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.store.Get(ctx, key)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get: %w", ErrDegraded, err)
	}
	entry, _ := result.(*Entry)
	return entry, nil
}

func (c *Cache) saveToStore(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	if _, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.store.Put(ctx, entry)
	}); err != nil {
		return fmt.Errorf("%w: put: %w", ErrDegraded, err)
	}
	return nil
}

func (c *Cache) deleteExpiredFromStore(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.store.DeleteExpired(ctx, before)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: delete expired: %w", ErrDegraded, err)
	}
	deleted, _ := result.(int64)
	return deleted, nil
}
