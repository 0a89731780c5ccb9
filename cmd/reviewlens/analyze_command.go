package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reviewlens/internal/analysis"
)

type analyzeMode struct {
	use   string
	short string
	mode  analysis.Mode
}

func newAnalyzeCommand(ctx *commandContext, am analyzeMode) *cobra.Command {
	var subject string
	var resume bool
	var summarize bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   am.use,
		Short: am.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer ctx.closeHistory()
			input := args[0]
			name := strings.TrimSpace(subject)
			if name == "" {
				name = analysis.SubjectFromPath(input)
			}
			report, runErr := runner.Run(cmd.Context(), analysis.Request{
				Subject:   name,
				InputPath: input,
				Mode:      am.mode,
				Resume:    resume,
				Summarize: summarize,
			})
			if report != nil {
				if err := printReport(cmd, report, jsonOutput); err != nil {
					return err
				}
			}
			if runErr != nil {
				return fmt.Errorf("%s %s: %w", am.mode, name, runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Hotel name used in output file names (default: input file name)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Reuse completed batches from a matching checkpoint")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Write a prose summary with the configured summarizer")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func newAggregateCommand(ctx *commandContext) *cobra.Command {
	var subject string
	var summarize bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "aggregate RESULTS",
		Short: "Rebuild the aspect report from an existing results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer ctx.closeHistory()
			name := strings.TrimSpace(subject)
			if name == "" {
				name = analysis.SubjectFromPath(args[0])
			}
			report, err := runner.Aggregate(cmd.Context(), analysis.AggregateRequest{
				Subject:     name,
				ResultsPath: args[0],
				Summarize:   summarize,
			})
			if err != nil {
				return err
			}
			return printReport(cmd, report, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Hotel name used in the report (default: results file name)")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Write a prose summary with the configured summarizer")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, report *analysis.Report, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, report)
	}
	out := cmd.OutOrStdout()
	renderReport(out, report, shouldColorize(out))
	return nil
}
