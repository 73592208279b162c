package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yisselda/translation-service/internal/app"
	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/handler"
)

func newBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: `Translate a JSON array of {"text","source_lang","target_lang"} items; "-" reads stdin`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readBatch(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return runBatch(ctx, a.Handler, cmd.OutOrStdout(), cmd.ErrOrStderr(), items)
			})
		},
	}
}

func readBatch(stdin io.Reader, path string) ([]domain.TranslationRequest, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []domain.TranslationRequest
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("invalid batch file %s: %w", path, err)
	}
	if items == nil {
		items = []domain.TranslationRequest{}
	}
	return items, nil
}

func runBatch(ctx context.Context, h *handler.Handler, out, errOut io.Writer, items []domain.TranslationRequest) error {
	resp, err := h.Handle(ctx, handler.Request{Action: handler.ActionTranslateBatch, Items: items})
	if err != nil {
		return err
	}
	if errResp, ok := resp.(*handler.ErrorResponse); ok {
		return fmt.Errorf("%s: %s", errResp.Code, errResp.Error)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if batch, ok := resp.(*handler.BatchResponse); ok {
		failed := 0
		for _, r := range batch.Results {
			if r.ErrorResponse != nil {
				failed++
			}
		}
		if failed > 0 {
			color.New(color.FgYellow).Fprintf(errOut, "%d of %d items failed\n", failed, len(batch.Results))
		}
	}
	return nil
}
