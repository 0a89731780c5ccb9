package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reviewlens/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var subject string
	var status string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureHistory()
			if err != nil {
				return err
			}
			defer ctx.closeHistory()

			runs, err := store.List(cmd.Context(), history.Filter{
				Subject: strings.TrimSpace(subject),
				Status:  strings.TrimSpace(status),
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Subject,
					run.Mode,
					run.Status,
					strconv.Itoa(run.ReviewCount),
					strconv.Itoa(run.LabelledCount),
					strconv.Itoa(run.FailedBatches),
					runTarget(run),
				})
			}
			fmt.Fprintln(out, renderTable("",
				[]string{"Started", "Hotel", "Mode", "Status", "Reviews", "Labelled", "Failed", "Report"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Only show runs for this hotel")
	cmd.Flags().StringVar(&status, "status", "", "Only show runs with this status (success, partial, canceled, failed)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show (0 shows all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

// runTarget points at the report, or the error for runs without one.
func runTarget(run history.Run) string {
	if run.ReportPath != "" {
		return run.ReportPath
	}
	return run.ErrorMessage
}
