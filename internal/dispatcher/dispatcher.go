// Package dispatcher orchestrates translation requests: validation, cache
// lookup, batched engine calls for misses and cache write-back.
package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yisselda/translation-service/internal/cache"
	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/engine"
	"github.com/yisselda/translation-service/internal/language"
)

// DefaultMaxConcurrency bounds the fan-out of one batch request.
const DefaultMaxConcurrency = 8

// Cache is the translation cache.
type Cache interface {
	Get(ctx context.Context, key cache.Key) (cache.Entry, bool)
	Put(ctx context.Context, key cache.Key, text string)
}

// Translator translates one item; the batcher coalesces these calls.
type Translator interface {
	Translate(ctx context.Context, item engine.Item) (string, error)
}

// Options configures a Dispatcher.
type Options struct {
	MaxConcurrency int
	Logger         *zap.Logger
}

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry       *language.Registry
	cache          Cache
	translator     Translator
	detector       language.Detector
	maxConcurrency int
	logger         *zap.Logger
}

// New creates a dispatcher.
func New(registry *language.Registry, c Cache, translator Translator, detector language.Detector, opts Options) *Dispatcher {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Dispatcher{
		registry:       registry,
		cache:          c,
		translator:     translator,
		detector:       detector,
		maxConcurrency: opts.MaxConcurrency,
		logger:         opts.Logger,
	}
}

// Translate translates a single text.
func (d *Dispatcher) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	text := cache.NormalizeText(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	target, err := d.registry.Validate(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("target_lang: %w", err)
	}

	result := &domain.TranslationResult{}
	var source language.Code
	if isAuto(req.SourceLang) {
		source, err = d.registry.ResolveAuto(ctx, text, d.detector)
		if err != nil {
			return nil, fmt.Errorf("source_lang: %w", err)
		}
		result.DetectedSourceLang = source.String()
	} else {
		source, err = d.registry.Validate(req.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("source_lang: %w", err)
		}
	}

	if source == target {
		result.TranslatedText = text
		return result, nil
	}

	key := cache.NewKey(text, source.String(), target.String())
	if entry, ok := d.cache.Get(ctx, key); ok {
		result.TranslatedText = entry.TranslatedText
		result.FromCache = true
		return result, nil
	}

	translated, err := d.translator.Translate(ctx, engine.Item{
		Text:       text,
		SourceLang: source.String(),
		TargetLang: target.String(),
	})
	if err != nil {
		return nil, err
	}

	d.cache.Put(context.WithoutCancel(ctx), key, translated)
	result.TranslatedText = translated
	return result, nil
}

// TranslateBatch translates every request concurrently. The result slice has
// the same length and order as reqs; each slot reports its own error.
func (d *Dispatcher) TranslateBatch(ctx context.Context, reqs []domain.TranslationRequest) []domain.BatchItemResult {
	results := make([]domain.BatchItemResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(d.maxConcurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := d.Translate(ctx, req)
			results[i] = domain.BatchItemResult{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		d.logger.Info("batch translated with failures", zap.Int("items", len(reqs)), zap.Int("failed", failed))
	}
	return results
}

// ListLanguages returns the supported languages ordered by code.
func (d *Dispatcher) ListLanguages() []domain.Language {
	return d.registry.List()
}

func isAuto(sourceLang string) bool {
	s := strings.TrimSpace(sourceLang)
	return s == "" || strings.EqualFold(s, domain.AutoDetect)
}
