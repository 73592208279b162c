// Package engine defines the boundary to the translation model.
package engine

import (
	"context"
)

//go:generate mockgen -source=engine.go -destination=../mocks/engine/mock_engine.go -package=mock_engine

// Engine is the translation model capability.
type Engine interface {
	// Translate translates a batch of items, which may mix language pairs.
	// It returns one translation per item, in the same order as the input.
	Translate(ctx context.Context, items []Item) ([]string, error)
	// Detect returns the language code of text.
	Detect(ctx context.Context, text string) (string, error)
}

// Item is one text to translate. Language codes are already validated.
type Item struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}
