package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/cli"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image>",
		Short: "Show what the model recognizes in an image",
		Args:  cobra.ExactArgs(1),
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
				predictions, err := c.ClassifyPath(ctx, args[0])
				if err != nil {
					return fmt.Errorf("classifier.ClassifyPath(%s) > %w", args[0], err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).Predictions(predictions)
				return nil
			})
		},
	}
}
