// Package domain contains the core domain types for the translation service.
package domain

// AutoDetect is the source language value that asks the engine to detect the
// language of the input text.
const AutoDetect = "auto"

// TranslationRequest is a single text to translate.
type TranslationRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
}

// TranslationResult is the outcome of a successful translation.
type TranslationResult struct {
	TranslatedText     string `json:"translated_text"`
	DetectedSourceLang string `json:"detected_source_lang,omitempty"`
	FromCache          bool   `json:"from_cache"`
}

// BatchItemResult holds either a result or an error for one item of a batch.
// Exactly one of Result and Err is set.
type BatchItemResult struct {
	Result *TranslationResult
	Err    error
}

// Language is a supported language code with its English name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
