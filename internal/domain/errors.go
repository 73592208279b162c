package domain

import (
	"context"
	"errors"
)

var (
	// ErrInvalidLanguage is returned when a language code is not in the registry.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrEmptyInput is returned when the text to translate is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrEngineUnavailable is returned when the translation model failed.
	// Callers may retry with backoff.
	ErrEngineUnavailable = errors.New("translation engine unavailable")
)

// Error codes reported on the wire.
const (
	CodeInvalidLanguage   = "invalid_language"
	CodeEmptyInput        = "empty_input"
	CodeEngineUnavailable = "engine_unavailable"
	CodeCanceled          = "canceled"
	CodeInternal          = "internal"
)

// ErrorCode maps an error to its wire code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidLanguage):
		return CodeInvalidLanguage
	case errors.Is(err, ErrEmptyInput):
		return CodeEmptyInput
	case errors.Is(err, ErrEngineUnavailable):
		return CodeEngineUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	default:
		return CodeInternal
	}
}

// IsRetryable reports whether a caller may retry the request.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrEngineUnavailable)
}
