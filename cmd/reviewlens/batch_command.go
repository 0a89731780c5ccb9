package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"reviewlens/internal/analysis"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var target int
	var modeFlag string
	var summarize bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Analyse every review file in a directory, one hotel per file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := analysis.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if target < 0 {
				return fmt.Errorf("--target must be >= 0")
			}
			inputs, err := listInputs(args[0])
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no review files found in %s", args[0])
			}
			runner, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer ctx.closeHistory()

			reqs := make([]analysis.Request, len(inputs))
			for i, path := range inputs {
				reqs[i] = analysis.Request{
					Subject:   analysis.SubjectFromPath(path),
					InputPath: path,
					Mode:      mode,
					Summarize: summarize,
				}
			}
			tally, reports, runErr := runner.RunMany(cmd.Context(), reqs, analysis.Tally{Target: target})

			if jsonOutput {
				if err := writeJSON(cmd, map[string]any{"tally": tally, "reports": reports}); err != nil {
					return err
				}
			} else {
				renderBatch(cmd, tally, reports)
			}
			return runErr
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "Stop after this many hotels produced labelled reviews (0 processes all)")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", string(analysis.ModeClassify), "Labelling mode: classify or annotate")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Write a prose summary for every hotel")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the tally and reports as JSON")
	return cmd
}

func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if analysis.SupportedInput(path) {
			out = append(out, path)
		}
	}
	slices.Sort(out)
	return out, nil
}

func renderBatch(cmd *cobra.Command, tally analysis.Tally, reports []*analysis.Report) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Subject,
			r.Status,
			fmt.Sprint(r.ReviewCount),
			fmt.Sprint(r.LabelledCount),
			fmt.Sprint(len(r.FailedBatches)),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable("", []string{"Hotel", "Status", "Reviews", "Labelled", "Failed"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}))
	}
	fmt.Fprintf(out, "Processed %d, with reviews %d, failed %d, skipped %d\n",
		tally.Processed, tally.WithReviews, tally.Failed, tally.Skipped)
	if tally.Target > 0 {
		fmt.Fprintf(out, "Target %d: %s\n", tally.Target, targetLabel(tally.Reached()))
	}
}

func targetLabel(reached bool) string {
	if reached {
		return "reached"
	}
	return "not reached"
}
