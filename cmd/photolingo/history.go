package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/cli"
	"github.com/at-ishikawa/photolingo/internal/export"
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Translation history commands",
	}

	historyCommand.AddCommand(newHistoryListCommand())
	historyCommand.AddCommand(newHistoryExportCommand())

	return historyCommand
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "list",
		Short: "Show recorded translations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				h, err := newHistory(ctx, cfg, app)
				if err != nil {
					return err
				}
				records, err := h.ListAll(ctx)
				if err != nil {
					return fmt.Errorf("history.ListAll() > %w", err)
				}
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				cli.NewPrinter(cmd.OutOrStdout()).History(records)
				return nil
			})
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of translations to show, 0 for all")
	return command
}

func newHistoryExportCommand() *cobra.Command {
	format := export.FormatYAML
	var outputDirectory string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export the translation history to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				h, err := newHistory(ctx, cfg, app)
				if err != nil {
					return err
				}
				records, err := h.ListAll(ctx)
				if err != nil {
					return fmt.Errorf("history.ListAll() > %w", err)
				}

				path, err := export.NewExporter(cfg.Export).Export(records, format, outputDirectory)
				if err != nil {
					return fmt.Errorf("exporter.Export(%s) > %w", format, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d translations written to: %s\n", len(records), path)
				return nil
			})
		},
	}
	command.Flags().Var(&format, "format", "output format")
	command.Flags().StringVar(&outputDirectory, "output", "", "output directory (default from config)")
	return command
}
