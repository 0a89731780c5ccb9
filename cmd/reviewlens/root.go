package main

import (
	"github.com/spf13/cobra"

	"reviewlens/internal/analysis"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:           "reviewlens",
		Short:         "Per-aspect sentiment analysis of hotel reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newAnalyzeCommand(ctx, analyzeMode{
		use:   "classify FILE",
		short: "Label reviews with the aspect classifier and aggregate them",
		mode:  analysis.ModeClassify,
	}))
	rootCmd.AddCommand(newAnalyzeCommand(ctx, analyzeMode{
		use:   "annotate FILE",
		short: "Label reviews with the language model annotator and aggregate them",
		mode:  analysis.ModeAnnotate,
	}))
	rootCmd.AddCommand(newAggregateCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newVocabCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
