// Package handler provides the Lambda event handler for the translation service.
package handler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/domain"
)

// Actions accepted in Request.Action.
const (
	ActionTranslate      = "translate"
	ActionTranslateBatch = "translate_batch"
	ActionLanguages      = "languages"
	ActionHealth         = "health"
)

// CodeInvalidRequest reports a malformed event.
const CodeInvalidRequest = "invalid_request"

// MaxBatchItems caps the items of one translate_batch event.
const MaxBatchItems = 1000

// Service is the request dispatcher.
type Service interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error)
	TranslateBatch(ctx context.Context, reqs []domain.TranslationRequest) []domain.BatchItemResult
	ListLanguages() []domain.Language
}

// Request is the input event. An empty action means translate.
type Request struct {
	Action     string                      `json:"action"`
	Text       string                      `json:"text,omitempty"`
	SourceLang string                      `json:"source_lang,omitempty"`
	TargetLang string                      `json:"target_lang,omitempty"`
	Items      []domain.TranslationRequest `json:"items,omitempty"`
}

// ErrorResponse is returned instead of a result when a request fails.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

type TranslateResponse struct {
	TranslatedText     string `json:"translated_text"`
	DetectedSourceLang string `json:"detected_source_lang,omitempty"`
	FromCache          bool   `json:"from_cache"`
}

// BatchItem holds either a translation or an error.
type BatchItem struct {
	*TranslateResponse
	*ErrorResponse
}

type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

type LanguagesResponse struct {
	SupportedLanguages []domain.Language `json:"supported_languages"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Handler routes events to the dispatcher.
type Handler struct {
	svc    Service
	logger *zap.Logger
}

// New creates a handler.
func New(svc Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Handle processes one event. Request failures are reported in the returned
// response; the error return is reserved for failures of the function itself.
func (h *Handler) Handle(ctx context.Context, req Request) (any, error) {
	if err := validateRequest(req); err != nil {
		return &ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest}, nil
	}

	switch req.Action {
	case ActionHealth:
		return &HealthResponse{Status: "healthy", Service: "translation"}, nil

	case ActionLanguages:
		return &LanguagesResponse{SupportedLanguages: h.svc.ListLanguages()}, nil

	case ActionTranslateBatch:
		results := h.svc.TranslateBatch(ctx, req.Items)
		resp := &BatchResponse{Results: make([]BatchItem, len(results))}
		for i, r := range results {
			if r.Err != nil {
				resp.Results[i] = BatchItem{ErrorResponse: h.errorResponse(r.Err)}
				continue
			}
			resp.Results[i] = BatchItem{TranslateResponse: toTranslateResponse(r.Result)}
		}
		return resp, nil

	default:
		res, err := h.svc.Translate(ctx, domain.TranslationRequest{
			Text:       req.Text,
			SourceLang: req.SourceLang,
			TargetLang: req.TargetLang,
		})
		if err != nil {
			return h.errorResponse(err), nil
		}
		return toTranslateResponse(res), nil
	}
}

func (h *Handler) errorResponse(err error) *ErrorResponse {
	code := domain.ErrorCode(err)
	switch code {
	case domain.CodeInternal:
		h.logger.Error("translation failed", zap.Error(err))
	case domain.CodeEngineUnavailable:
		h.logger.Warn("translation engine unavailable", zap.Error(err))
	}
	return &ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Retryable: domain.IsRetryable(err),
	}
}

func toTranslateResponse(res *domain.TranslationResult) *TranslateResponse {
	return &TranslateResponse{
		TranslatedText:     res.TranslatedText,
		DetectedSourceLang: res.DetectedSourceLang,
		FromCache:          res.FromCache,
	}
}

// validateRequest checks the event shape. Field contents are validated by the
// dispatcher.
func validateRequest(req Request) error {
	switch req.Action {
	case "", ActionTranslate, ActionLanguages, ActionHealth:
		return nil
	case ActionTranslateBatch:
		if req.Items == nil {
			return fmt.Errorf("items is required")
		}
		if len(req.Items) > MaxBatchItems {
			return fmt.Errorf("items exceeds the limit of %d", MaxBatchItems)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", req.Action)
	}
}
