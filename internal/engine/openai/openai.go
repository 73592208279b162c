// Package openai translates with an OpenAI chat model.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/engine"
)

const translateSystemPrompt = `You are a translation engine.
The user sends a JSON array of objects {"text", "source_lang", "target_lang"}.
Translate each "text" from "source_lang" to "target_lang".
Return ONLY a JSON array of strings with exactly one translation per input object, in the same order.`

const detectSystemPrompt = `Identify the language of the user's text.
Respond with only its ISO 639-1 code (or ISO 639-3 if it has none), nothing else.`

// Config configures the OpenAI engine.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Engine implements engine.Engine with chat completions.
type Engine struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ engine.Engine = (*Engine)(nil)

// New creates an OpenAI engine.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Engine{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Translate implements engine.Engine.
func (e *Engine) Translate(ctx context.Context, items []engine.Item) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}

	input, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}

	content, err := e.complete(ctx, translateSystemPrompt, string(input))
	if err != nil {
		return nil, err
	}

	var translations []string
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &translations); err != nil {
		e.logger.Warn("unparseable model response", zap.String("content", content), zap.Error(err))
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(translations) != len(items) {
		return nil, fmt.Errorf("translation count mismatch: expected %d, got %d", len(items), len(translations))
	}
	return translations, nil
}

// Detect implements engine.Engine.
func (e *Engine) Detect(ctx context.Context, text string) (string, error) {
	content, err := e.complete(ctx, detectSystemPrompt, text)
	if err != nil {
		return "", err
	}
	code := strings.Trim(strings.TrimSpace(content), `"'.`)
	if code == "" {
		return "", fmt.Errorf("no language detected")
	}
	return code, nil
}

func (e *Engine) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSONArray strips any text around the outermost JSON array, such as
// markdown code fences.
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
