// Package app wires the translation service components and manages their
// lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/batcher"
	"github.com/yisselda/translation-service/internal/cache"
	"github.com/yisselda/translation-service/internal/cache/sqlstore"
	"github.com/yisselda/translation-service/internal/config"
	"github.com/yisselda/translation-service/internal/dispatcher"
	"github.com/yisselda/translation-service/internal/engine"
	"github.com/yisselda/translation-service/internal/engine/factory"
	lambdaengine "github.com/yisselda/translation-service/internal/engine/lambda"
	"github.com/yisselda/translation-service/internal/handler"
	"github.com/yisselda/translation-service/internal/language"
)

// Options holds optional dependencies for Build.
type Options struct {
	// Invoker is passed to the lambda engine provider.
	Invoker lambdaengine.Invoker
	// Engine replaces the configured provider.
	Engine engine.Engine
	Logger *zap.Logger
}

// App holds the wired components.
type App struct {
	Dispatcher *dispatcher.Dispatcher
	Handler    *handler.Handler
	Cache      *cache.Cache

	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

// Build creates every component from cfg and starts the cache sweeper.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{}

	var store cache.Store
	if cfg.Cache.Store.Driver != "" {
		s, err := sqlstore.Open(ctx, cfg.Cache.Store.Driver, cfg.Cache.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache store: %w", err)
		}
		logger.Info("Cache store opened", zap.String("driver", cfg.Cache.Store.Driver))
		store = s
	}

	c := cache.New(cache.Options{
		TTL:           cfg.Cache.TTL(),
		MaxEntries:    cfg.Cache.MaxEntries,
		SweepInterval: cfg.Cache.SweepInterval(),
		Store:         store,
		StoreTimeout:  cfg.Cache.Store.Timeout(),
		Logger:        logger.Named("cache"),
	})
	a.AddShutdownHook(func(ctx context.Context) error {
		return c.Close()
	})

	eng := opts.Engine
	if eng == nil {
		var err error
		eng, err = factory.New(ctx, cfg.Engine, opts.Invoker, logger.Named("engine"))
		if err != nil {
			return nil, errors.Join(err, a.Shutdown(ctx))
		}
		if closer, ok := eng.(io.Closer); ok {
			a.AddShutdownHook(func(ctx context.Context) error {
				return closer.Close()
			})
		}
	}

	b := batcher.New(eng, batcher.Options{
		MaxSize:     cfg.Batch.MaxSize,
		MaxWait:     cfg.Batch.MaxWait(),
		CallTimeout: cfg.Engine.CallTimeout(),
		Logger:      logger.Named("batcher"),
	})
	a.AddShutdownHook(b.Close)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go c.Run(sweepCtx)
	a.AddShutdownHook(func(ctx context.Context) error {
		stopSweep()
		return nil
	})

	a.Cache = c
	a.Dispatcher = dispatcher.New(language.Default(), c, b, eng, dispatcher.Options{
		MaxConcurrency: cfg.Dispatch.MaxConcurrency,
		Logger:         logger.Named("dispatcher"),
	})
	a.Handler = handler.New(a.Dispatcher, logger.Named("handler"))
	return a, nil
}

// AddShutdownHook registers a function to call during Shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run with a context cancelled on OS interrupt, then shuts the
// app down.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown(context.Background())
	case err := <-errCh:
		return errors.Join(err, a.Shutdown(context.Background()))
	}
}

// Shutdown runs the registered hooks once, newest first.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
