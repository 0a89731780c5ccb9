package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"reviewlens/internal/aggregate"
	"reviewlens/internal/analysis"
	"reviewlens/internal/aspect"
)

const reasonsShown = 3

func renderReport(w io.Writer, report *analysis.Report, colorize bool) {
	for _, line := range renderSectionHeader(report.Subject, colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, renderStatusLine("Status", reportStatusKind(report.Status), report.Status, colorize))
	fmt.Fprintln(w, renderStatusLine("Mode", statusInfo, string(report.Mode), colorize))
	fmt.Fprintln(w, renderStatusLine("Reviews", statusInfo,
		fmt.Sprintf("%d analysed, %d dropped, %d labelled", report.ReviewCount, report.DroppedCount, report.LabelledCount), colorize))
	if n := len(report.FailedBatches); n > 0 {
		fmt.Fprintln(w, renderStatusLine("Failed batches", statusWarn, failedBatchSummary(report.FailedBatches), colorize))
	}
	if report.Elapsed != "" {
		fmt.Fprintln(w, renderStatusLine("Elapsed", statusInfo, report.Elapsed, colorize))
	}
	fmt.Fprintln(w)

	if len(report.Summaries) == 0 {
		fmt.Fprintln(w, "No aspects mentioned.")
	} else {
		fmt.Fprintln(w, renderTable("", aspectHeaders, aspectRows(report.Summaries), aspectAligns))
	}

	if report.Summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, report.Summary)
	}
	fmt.Fprintln(w)
	if report.ResultsPath != "" {
		fmt.Fprintf(w, "Results: %s\n", report.ResultsPath)
	}
	if report.Path != "" {
		fmt.Fprintf(w, "Report:  %s\n", report.Path)
	}
}

var (
	aspectHeaders = []string{"Aspect", "Pos", "Neg", "Neutral", "Verdict", "Praised", "Complaints"}
	aspectAligns  = []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft}
)

func aspectRows(summaries []aggregate.AspectSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		name := s.Key
		if a, ok := aspect.Lookup(s.Aspect); ok {
			name = a.Display
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(s.Positive),
			strconv.Itoa(s.Negative),
			strconv.Itoa(s.Neutral),
			aggregate.Verdict(s),
			joinReasons(s.PositiveReasons),
			joinReasons(s.NegativeReasons),
		})
	}
	return rows
}

func joinReasons(ids []string) string {
	if len(ids) > reasonsShown {
		ids = ids[:reasonsShown]
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = aggregate.DisplayReason(id)
	}
	return strings.Join(out, ", ")
}

func failedBatchSummary(batches []analysis.FailedBatch) string {
	parts := make([]string, 0, len(batches))
	for _, b := range batches {
		parts = append(parts, fmt.Sprintf("#%d (%s)", b.Index, b.Reason))
	}
	return strings.Join(parts, ", ")
}
