// Package httpmodel calls a self-hosted translation model server over HTTP.
package httpmodel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/yisselda/translation-service/internal/engine"
)

// Config configures the HTTP model client.
type Config struct {
	BaseURL    string
	APIKey     string
	MaxRetries uint
	Timeout    time.Duration
}

// Client implements engine.Engine against a model server exposing
// POST /translate and POST /detect.
type Client struct {
	httpClient *resty.Client
	maxRetries uint
	logger     *zap.Logger
}

var _ engine.Engine = (*Client)(nil)

type translateRequest struct {
	Items []engine.Item `json:"items"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language string `json:"language"`
}

// NewClient creates a client for the model server at cfg.BaseURL.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("model server base URL is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient: client,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Translate implements engine.Engine.
func (c *Client) Translate(ctx context.Context, items []engine.Item) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}

	var result translateResponse
	if err := c.post(ctx, "/translate", translateRequest{Items: items}, &result); err != nil {
		return nil, err
	}
	if len(result.Translations) != len(items) {
		return nil, fmt.Errorf("translation count mismatch: expected %d, got %d", len(items), len(result.Translations))
	}
	return result.Translations, nil
}

// Detect implements engine.Engine.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	var result detectResponse
	if err := c.post(ctx, "/detect", detectRequest{Text: text}, &result); err != nil {
		return "", err
	}
	if result.Language == "" {
		return "", fmt.Errorf("no language detected")
	}
	return result.Language, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return retry.Do(
		func() error {
			response, err := c.httpClient.R().
				SetContext(ctx).
				SetBody(body).
				SetResult(result).
				Post(path)
			if err != nil {
				return fmt.Errorf("httpClient.Post(%s) > %w", path, err)
			}
			if response.IsError() {
				err := fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
				if !isRetryableStatus(response.StatusCode()) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries+1),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying model server call",
				zap.String("path", path),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
}

func isRetryableStatus(code int) bool {
	return code == 429 || code >= 500
}
