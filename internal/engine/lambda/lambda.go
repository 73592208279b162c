// Package lambda invokes the translation model deployed as an AWS Lambda function.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/chunker"
	"github.com/yisselda/translation-service/internal/engine"
)

const (
	taskTranslate = "translate"
	taskDetect    = "detect"
)

// Invoker is the subset of the Lambda API the engine uses.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Config configures the Lambda engine.
type Config struct {
	FunctionName       string
	DetectFunctionName string
	MaxTokensPerChunk  int
	MaxRetries         uint
}

// Engine implements engine.Engine on top of a model Lambda.
type Engine struct {
	client Invoker
	cfg    Config
	logger *zap.Logger
}

var _ engine.Engine = (*Engine)(nil)

// TranslatorRequest is the request format of the model function.
// Chunks are processed sequentially inside one invocation.
type TranslatorRequest struct {
	Task   string          `json:"task"`
	Chunks [][]engine.Item `json:"chunks,omitempty"`
	Text   string          `json:"text,omitempty"`
}

// TranslatorResponse is the response format of the model function.
type TranslatorResponse struct {
	Translations [][]string `json:"translations,omitempty"`
	Language     string     `json:"language,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// NewClient creates a Lambda API client from the default AWS configuration.
func NewClient(ctx context.Context) (*lambda.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return lambda.NewFromConfig(cfg), nil
}

// New creates an engine that invokes cfg.FunctionName through client.
func New(client Invoker, cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.FunctionName == "" {
		return nil, fmt.Errorf("model function name is required")
	}
	if cfg.DetectFunctionName == "" {
		cfg.DetectFunctionName = cfg.FunctionName
	}
	if cfg.MaxTokensPerChunk <= 0 {
		cfg.MaxTokensPerChunk = chunker.DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, cfg: cfg, logger: logger}, nil
}

// Translate chunks the batch by token count and sends all chunks in a single
// invocation.
func (e *Engine) Translate(ctx context.Context, items []engine.Item) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}

	chunks := chunker.ChunkByTokens(items, e.cfg.MaxTokensPerChunk, func(item engine.Item) string {
		return item.Text
	})

	resp, err := e.invoke(ctx, e.cfg.FunctionName, TranslatorRequest{Task: taskTranslate, Chunks: chunks})
	if err != nil {
		return nil, err
	}
	if len(resp.Translations) != len(chunks) {
		return nil, fmt.Errorf("chunk count mismatch: sent %d, got %d", len(chunks), len(resp.Translations))
	}
	for i := range chunks {
		if len(resp.Translations[i]) != len(chunks[i]) {
			return nil, fmt.Errorf("chunk %d: translation count mismatch: sent %d, got %d", i, len(chunks[i]), len(resp.Translations[i]))
		}
	}

	e.logger.Debug("model function translated batch",
		zap.String("function", e.cfg.FunctionName),
		zap.Int("items", len(items)),
		zap.Int("chunks", len(chunks)))
	return chunker.Flatten(resp.Translations), nil
}

// Detect asks the model function for the language of text.
func (e *Engine) Detect(ctx context.Context, text string) (string, error) {
	resp, err := e.invoke(ctx, e.cfg.DetectFunctionName, TranslatorRequest{Task: taskDetect, Text: text})
	if err != nil {
		return "", err
	}
	if resp.Language == "" {
		return "", fmt.Errorf("no language detected")
	}
	return resp.Language, nil
}

// invoke calls a model function, retrying throttled and transient service errors.
func (e *Engine) invoke(ctx context.Context, functionName string, req TranslatorRequest) (*TranslatorResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result *lambda.InvokeOutput
	err = retry.Do(
		func() error {
			out, err := e.client.Invoke(ctx, &lambda.InvokeInput{
				FunctionName: aws.String(functionName),
				Payload:      payload,
			})
			if err != nil {
				return err
			}
			result = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(e.cfg.MaxRetries+1),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			e.logger.Info("retrying model function",
				zap.String("function", functionName),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", functionName, err)
	}

	if result.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp TranslatorResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("translator error: %s", resp.Error)
	}
	return &resp, nil
}

func isRetryableError(err error) bool {
	var throttled *types.TooManyRequestsException
	var service *types.ServiceException
	var notReady *types.ResourceNotReadyException
	return errors.As(err, &throttled) || errors.As(err, &service) || errors.As(err, &notReady)
}
