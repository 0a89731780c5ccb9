package analysis

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"reviewlens/internal/aggregate"
	"reviewlens/internal/fileutil"
	"reviewlens/internal/textutil"
)

// Report statuses.
const (
	StatusSuccess  = "success"
	StatusPartial  = "partial"
	StatusCanceled = "canceled"
	// StatusFailed marks a run that ended before a report existed. It only
	// appears in run history.
	StatusFailed = "failed"
)

// FailedBatch describes a batch whose reviews are absent from the results.
type FailedBatch struct {
	Index    int    `json:"index"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Reason   string `json:"reason"`
	Attempts int    `json:"attempts,omitempty"`
}

// Report is the final per-subject analysis document.
type Report struct {
	Subject         string                             `json:"subject"`
	RunID           string                             `json:"run_id"`
	Mode            Mode                               `json:"mode"`
	Status          string                             `json:"status"`
	ReviewCount     int                                `json:"review_count"`
	DroppedCount    int                                `json:"dropped_count"`
	LabelledCount   int                                `json:"labelled_count"`
	AspectSummary   map[string]aggregate.AspectSummary `json:"aspect_summary"`
	AspectText      string                             `json:"aspect_text"`
	Summary         string                             `json:"summary,omitempty"`
	SummaryBackend  string                             `json:"summary_backend,omitempty"`
	FailedBatches   []FailedBatch                      `json:"failed_batches"`
	ResultsPath     string                             `json:"results_path,omitempty"`
	DiagnosticsPath string                             `json:"diagnostics_path,omitempty"`
	CheckpointPath  string                             `json:"checkpoint_path,omitempty"`
	StartedAt       time.Time                          `json:"started_at"`
	Elapsed         string                             `json:"elapsed"`

	// Path is where the report itself was written.
	Path string `json:"-"`
	// Summaries keeps the ordered aspect summaries for display.
	Summaries []aggregate.AspectSummary `json:"-"`
}

// fileStem is the filesystem-safe subject prefix shared by every output.
func fileStem(subject string) string {
	return textutil.SanitizeToken(subject)
}

func timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

func writeReport(dir string, report *Report) (string, error) {
	name := fmt.Sprintf("%s_analysis_%s.json", fileStem(report.Subject), timestamp(report.StartedAt))
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
