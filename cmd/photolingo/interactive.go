package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/cli"
	"github.com/at-ishikawa/photolingo/internal/pipeline"
)

func newInteractiveCommand() *cobra.Command {
	to := newLanguageFlag("es", false)

	command := &cobra.Command{
		Use:   "interactive",
		Short: "Open images and translate predictions in a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				c, err := newClassifier(cfg.Classifier, app)
				if err != nil {
					return err
				}
				h, err := newHistory(ctx, cfg, app)
				if err != nil {
					return err
				}
				session := pipeline.NewSession(c, newTranslator(cfg.Translator, app), h)
				return cli.NewInteractiveCLI(session, h, to.code).Run(ctx)
			})
		},
	}
	command.Flags().Var(to, "to", "initial target language code")
	return command
}
