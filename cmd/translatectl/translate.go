package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yisselda/translation-service/internal/app"
	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/handler"
)

func newTranslateCommand() *cobra.Command {
	var from, to string

	command := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate a single text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return runTranslate(ctx, a.Dispatcher, cmd.OutOrStdout(), cmd.ErrOrStderr(), domain.TranslationRequest{
					Text:       text,
					SourceLang: from,
					TargetLang: to,
				})
			})
		},
	}

	addLanguageFlags(command.Flags(), &from, &to)
	_ = command.MarkFlagRequired("to")

	return command
}

func addLanguageFlags(fs *pflag.FlagSet, from, to *string) {
	fs.StringVar(from, "from", domain.AutoDetect, "source language code, or auto to detect it")
	fs.StringVar(to, "to", "", "target language code")
}

func runTranslate(ctx context.Context, svc handler.Service, out, errOut io.Writer, req domain.TranslationRequest) error {
	res, err := svc.Translate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.ErrorCode(err), err)
	}

	fmt.Fprintln(out, res.TranslatedText)

	var notes []string
	if res.DetectedSourceLang != "" {
		notes = append(notes, "detected "+res.DetectedSourceLang)
	}
	if res.FromCache {
		notes = append(notes, "cached")
	}
	if len(notes) > 0 {
		color.New(color.FgCyan).Fprintf(errOut, "(%s)\n", strings.Join(notes, ", "))
	}
	return nil
}
