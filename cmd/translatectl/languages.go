package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yisselda/translation-service/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(language.Default(), cmd.OutOrStdout())
		},
	}
}

func runLanguages(registry *language.Registry, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, lang := range registry.List() {
		fmt.Fprintf(tw, "%s\t%s\n", lang.Code, lang.Name)
	}
	return tw.Flush()
}
