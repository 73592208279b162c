// Package language validates and normalizes language codes against the set of
// languages the translation model supports.
package language

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yisselda/translation-service/internal/domain"
)

// Code is a language code that passed registry validation.
type Code string

func (c Code) String() string {
	return string(c)
}

// Detector detects the language of a text. The engine provides it.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Registry is an immutable table of supported languages.
type Registry struct {
	names   map[string]string
	ordered []domain.Language
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New(supported)
})

// Default returns the process-wide registry of supported languages.
func Default() *Registry {
	return defaultRegistry()
}

// New creates a registry from a list of languages. Codes are normalized;
// later duplicates are ignored.
func New(langs []domain.Language) *Registry {
	r := &Registry{
		names:   make(map[string]string, len(langs)),
		ordered: make([]domain.Language, 0, len(langs)),
	}
	for _, lang := range langs {
		code := Normalize(lang.Code)
		if code == "" {
			continue
		}
		if _, ok := r.names[code]; ok {
			continue
		}
		r.names[code] = lang.Name
		r.ordered = append(r.ordered, domain.Language{Code: code, Name: lang.Name})
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Code < r.ordered[j].Code
	})
	return r
}

// Normalize converts a code to its canonical form: lower-case language,
// "_" separator and upper-case region ("pt-br" becomes "pt_BR").
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	parts := strings.Split(strings.ReplaceAll(code, "-", "_"), "_")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.ToUpper(parts[i])
	}
	return strings.Join(parts, "_")
}

// Validate checks that a code is supported and returns its canonical form.
func (r *Registry) Validate(code string) (Code, error) {
	normalized := Normalize(code)
	if _, ok := r.names[normalized]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, code)
	}
	return Code(normalized), nil
}

// ResolveAuto detects the language of text and validates the result.
func (r *Registry) ResolveAuto(ctx context.Context, text string, detector Detector) (Code, error) {
	detected, err := detector.Detect(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: detect language: %v", domain.ErrEngineUnavailable, err)
	}
	return r.Validate(detected)
}

// Name returns the English name of a supported language.
func (r *Registry) Name(code Code) string {
	return r.names[string(code)]
}

// List returns all supported languages ordered by code.
func (r *Registry) List() []domain.Language {
	langs := make([]domain.Language, len(r.ordered))
	copy(langs, r.ordered)
	return langs
}

// Len returns the number of supported languages.
func (r *Registry) Len() int {
	return len(r.ordered)
}
