// Package batcher coalesces concurrent translation requests into batched
// engine calls.
//
// Requests join the open window. The window closes when it holds MaxSize
// requests or MaxWait has elapsed since it opened, whichever comes first, and
// the next request opens a fresh window. Appending to the window and deciding
// to close it happen under one mutex, so each window is flushed exactly once.
package batcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/engine"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("batcher closed")

const (
	DefaultMaxSize     = 32
	DefaultMaxWait     = 10 * time.Millisecond
	DefaultCallTimeout = 30 * time.Second
)

// Options configures a Batcher. Zero values fall back to the defaults above.
type Options struct {
	MaxSize     int
	MaxWait     time.Duration
	CallTimeout time.Duration
	Logger      *zap.Logger
}

// Batcher is safe for concurrent use.
type Batcher struct {
	engine      engine.Engine
	maxSize     int
	maxWait     time.Duration
	callTimeout time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	window   *window
	closed   bool
	inflight sync.WaitGroup
}

type window struct {
	id       string
	openedAt time.Time
	items    []engine.Item
	pending  []*Pending
	timer    *time.Timer
}

// Pending is the handle for one submitted item.
type Pending struct {
	done chan struct{}
	text string
	err  error
}

// New creates a batcher in front of eng.
func New(eng engine.Engine, opts Options) *Batcher {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = DefaultMaxWait
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Batcher{
		engine:      eng,
		maxSize:     opts.MaxSize,
		maxWait:     opts.MaxWait,
		callTimeout: opts.CallTimeout,
		logger:      opts.Logger,
	}
}

// Submit adds item to the open window and returns its handle.
func (b *Batcher) Submit(item engine.Item) (*Pending, error) {
	p := &Pending{done: make(chan struct{})}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	w := b.window
	if w == nil {
		w = &window{id: uuid.NewString(), openedAt: time.Now()}
		w.timer = time.AfterFunc(b.maxWait, func() {
			b.expire(w)
		})
		b.window = w
	}
	w.items = append(w.items, item)
	w.pending = append(w.pending, p)

	var full *window
	if len(w.items) >= b.maxSize {
		full = b.detachLocked()
	}
	b.mu.Unlock()

	if full != nil {
		go b.flush(full, "size")
	}
	return p, nil
}

// Translate submits item and waits for its translation.
func (b *Batcher) Translate(ctx context.Context, item engine.Item) (string, error) {
	p, err := b.Submit(item)
	if err != nil {
		return "", err
	}
	return p.Wait(ctx)
}

// Close stops accepting items, flushes the open window and waits for in-flight
// engine calls to finish or ctx to be done.
func (b *Batcher) Close(ctx context.Context) error {
	b.mu.Lock()
	var w *window
	if !b.closed {
		b.closed = true
		if b.window != nil {
			w = b.detachLocked()
		}
	}
	b.mu.Unlock()

	if w != nil {
		go b.flush(w, "close")
	}

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until the item's batch returns or ctx is done. Cancelling ctx
// abandons this handle only; the batch still runs for the other items.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.text, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Done is closed once the handle is resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func (p *Pending) resolve(text string, err error) {
	p.text = text
	p.err = err
	close(p.done)
}

// detachLocked takes the open window out of the batcher. b.mu must be held.
func (b *Batcher) detachLocked() *window {
	w := b.window
	b.window = nil
	w.timer.Stop()
	b.inflight.Add(1)
	return w
}

func (b *Batcher) expire(w *window) {
	b.mu.Lock()
	if b.window != w {
		// already closed by size or Close
		b.mu.Unlock()
		return
	}
	b.detachLocked()
	b.mu.Unlock()

	b.flush(w, "wait")
}

func (b *Batcher) flush(w *window, reason string) {
	defer b.inflight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), b.callTimeout)
	defer cancel()

	start := time.Now()
	results, err := b.engine.Translate(ctx, w.items)
	if err == nil && len(results) != len(w.items) {
		err = fmt.Errorf("engine returned %d results for %d items", len(results), len(w.items))
	}

	logger := b.logger.With(
		zap.String("window", w.id),
		zap.String("reason", reason),
		zap.Int("size", len(w.items)),
		zap.Duration("waited", start.Sub(w.openedAt)),
		zap.Duration("took", time.Since(start)))

	if err != nil {
		logger.Warn("batch failed", zap.Error(err))
		failure := fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
		for _, p := range w.pending {
			p.resolve("", failure)
		}
		return
	}

	logger.Debug("batch translated")
	for i, p := range w.pending {
		p.resolve(results[i], nil)
	}
}
