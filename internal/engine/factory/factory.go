// Package factory builds the configured translation engine.
package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/config"
	"github.com/yisselda/translation-service/internal/engine"
	"github.com/yisselda/translation-service/internal/engine/httpmodel"
	lambdaengine "github.com/yisselda/translation-service/internal/engine/lambda"
	"github.com/yisselda/translation-service/internal/engine/openai"
)

// New creates the engine selected by cfg.Provider. invoker is used by the
// lambda provider; when nil a client is built from the default AWS config.
func New(ctx context.Context, cfg config.EngineConfig, invoker lambdaengine.Invoker, logger *zap.Logger) (engine.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case config.ProviderLambda, "":
		if invoker == nil {
			client, err := lambdaengine.NewClient(ctx)
			if err != nil {
				return nil, err
			}
			invoker = client
		}
		logger.Info("Creating Lambda translation engine",
			zap.String("function", cfg.Lambda.FunctionName),
			zap.Int("max_tokens_per_chunk", cfg.MaxTokensPerChunk),
		)
		eng, err := lambdaengine.New(invoker, lambdaengine.Config{
			FunctionName:       cfg.Lambda.FunctionName,
			DetectFunctionName: cfg.Lambda.DetectFunctionName,
			MaxTokensPerChunk:  cfg.MaxTokensPerChunk,
			MaxRetries:         cfg.MaxRetries,
		}, logger)
		if err != nil {
			return nil, err
		}
		return eng, nil

	case config.ProviderHTTP:
		logger.Info("Creating HTTP translation engine",
			zap.String("base_url", cfg.HTTP.BaseURL),
		)
		client, err := httpmodel.NewClient(httpmodel.Config{
			BaseURL:    cfg.HTTP.BaseURL,
			APIKey:     cfg.HTTP.APIKey,
			MaxRetries: cfg.MaxRetries,
			Timeout:    cfg.CallTimeout(),
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.ProviderOpenAI:
		logger.Info("Creating OpenAI translation engine",
			zap.String("model", cfg.OpenAI.Model),
		)
		eng, err := openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return eng, nil

	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", cfg.Provider)
	}
}
