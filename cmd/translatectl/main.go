// Command translatectl runs translations through the service pipeline from
// the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yisselda/translation-service/internal/app"
	"github.com/yisselda/translation-service/internal/config"
	"github.com/yisselda/translation-service/internal/logging"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "translatectl",
		Short:         "Translate text with caching and request batching",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./translation.yaml or $HOME/.config/translation-service/translation.yaml)")

	root.AddCommand(
		newTranslateCommand(),
		newBatchCommand(),
		newLanguagesCommand(),
	)
	return root
}

// withApp builds the service from the configuration and runs fn with it.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	a, err := app.Build(ctx, cfg, app.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to build translation service: %w", err)
	}
	return a.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, a)
	})
}
