package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/cli"
	"github.com/at-ishikawa/photolingo/internal/language"
)

func newTranslateCommand() *cobra.Command {
	from := newLanguageFlag("en", true)
	to := newLanguageFlag("es", false)

	command := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate a word or phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			text := strings.Join(args, " ")

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				client := newTranslator(cfg.Translator, app)
				result := client.Translate(ctx, from.code, to.code, text)
				cli.NewPrinter(cmd.OutOrStdout()).Translation(text, to.code, result)
				if !result.OK() {
					return fmt.Errorf("translation failed: %s", result.Failure)
				}
				return nil
			})
		},
	}
	command.Flags().Var(from, "from", fmt.Sprintf("source language code, or %s to detect it", language.Auto))
	command.Flags().Var(to, "to", "target language code")
	return command
}
