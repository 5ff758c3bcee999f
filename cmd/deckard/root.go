package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deckard",
		Short: "Deckard - layout analysis for AI-generated slide decks",
		Long: `Deckard decides which slide layout fits a piece of generated content.

It extracts structural signals from each slide, scores every layout in the
catalog against a weighted rule table, and reports the ranked recommendation
together with confidence, reasoning and content optimizations.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newDraftCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newLayoutsCommand())
	cmd.AddCommand(newRulesCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
