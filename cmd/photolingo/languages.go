package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/photolingo/internal/cli"
	"github.com/at-ishikawa/photolingo/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages translations can target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.NewPrinter(cmd.OutOrStdout()).Languages(language.All())
			return nil
		},
	}
}
