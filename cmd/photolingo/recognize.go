package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/cli"
	"github.com/at-ishikawa/photolingo/internal/pipeline"
)

func newRecognizeCommand() *cobra.Command {
	to := newLanguageFlag("es", false)
	var pick int

	command := &cobra.Command{
		Use:   "recognize <image>",
		Short: "Classify an image, translate a prediction and record it in the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick < 1 {
				return fmt.Errorf("--pick must be 1 or greater: %d", pick)
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
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
				printer := cli.NewPrinter(cmd.OutOrStdout())

				predictions, err := session.Submit(ctx, data)
				if err != nil {
					return fmt.Errorf("session.Submit() > %w", err)
				}
				printer.Predictions(predictions)
				if pick > len(predictions) {
					return fmt.Errorf("--pick %d is out of range, the model returned %d predictions", pick, len(predictions))
				}

				result, err := session.Translate(ctx, pick-1, to.code)
				printer.Translation(predictions[pick-1].Label, to.code, result)
				if err != nil {
					return fmt.Errorf("session.Translate() > %w", err)
				}
				if !result.OK() {
					return fmt.Errorf("translation failed: %s", result.Failure)
				}
				return nil
			})
		},
	}
	command.Flags().Var(to, "to", "target language code")
	command.Flags().IntVar(&pick, "pick", 1, "prediction to translate, starting at 1")
	return command
}
