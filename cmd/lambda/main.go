// Package main is the entry point for the translation service Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/yisselda/translation-service/internal/app"
	"github.com/yisselda/translation-service/internal/config"
	lambdaengine "github.com/yisselda/translation-service/internal/engine/lambda"
	"github.com/yisselda/translation-service/internal/handler"
	"github.com/yisselda/translation-service/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client, err := lambdaengine.NewClient(ctx)
	if err != nil {
		logger.Fatal("Failed to create Lambda client", zap.Error(err))
	}

	// Components are built once per execution environment and shared by
	// every invocation it serves.
	a, err := app.Build(ctx, cfg, app.Options{Invoker: client, Logger: logger})
	if err != nil {
		logger.Fatal("Failed to build translation service", zap.Error(err))
	}

	fn := &function{
		handler: a.Handler,
		warmer:  newWarmer(client, logger.Named("warmup")),
	}
	lambda.StartWithOptions(fn.handleRequest, lambda.WithEnableSIGTERM(func() {
		if err := a.Shutdown(context.Background()); err != nil {
			logger.Warn("Shutdown failed", zap.Error(err))
		}
		_ = logger.Sync()
	}))
}

type function struct {
	handler *handler.Handler
	warmer  *warmer
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return f.warmer.Handle(ctx, warmup)
	}

	// Parse the request and delegate to the handler
	var req handler.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return &handler.ErrorResponse{Error: "malformed event: " + err.Error(), Code: handler.CodeInvalidRequest}, nil
	}

	return f.handler.Handle(ctx, req)
}
