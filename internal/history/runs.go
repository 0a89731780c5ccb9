package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Run is one recorded analysis run.
type Run struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id"`
	Subject       string    `json:"subject"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
	InputPath     string    `json:"input_path,omitempty"`
	ReviewCount   int       `json:"review_count"`
	DroppedCount  int       `json:"dropped_count"`
	LabelledCount int       `json:"labelled_count"`
	FailedBatches int       `json:"failed_batches"`
	ResultsPath   string    `json:"results_path,omitempty"`
	ReportPath    string    `json:"report_path,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Filter narrows List results. Zero values match everything; Limit <= 0
// returns every row.
type Filter struct {
	Subject string
	Status  string
	Limit   int
}

const runColumns = "id, run_id, subject, mode, status, input_path, review_count, dropped_count, labelled_count, failed_batches, results_path, report_path, error_message, started_at, finished_at"

// Record inserts run, replacing any earlier row with the same run id.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if strings.TrimSpace(run.RunID) == "" {
		return errors.New("run id is required")
	}
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	err := s.exec(ctx,
		`INSERT INTO runs (
            run_id, subject, mode, status, input_path, review_count, dropped_count,
            labelled_count, failed_batches, results_path, report_path, error_message,
            started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id) DO UPDATE SET
            subject = excluded.subject, mode = excluded.mode, status = excluded.status,
            input_path = excluded.input_path, review_count = excluded.review_count,
            dropped_count = excluded.dropped_count, labelled_count = excluded.labelled_count,
            failed_batches = excluded.failed_batches, results_path = excluded.results_path,
            report_path = excluded.report_path, error_message = excluded.error_message,
            started_at = excluded.started_at, finished_at = excluded.finished_at`,
		run.RunID,
		run.Subject,
		run.Mode,
		run.Status,
		nullableString(run.InputPath),
		run.ReviewCount,
		run.DroppedCount,
		run.LabelledCount,
		run.FailedBatches,
		nullableString(run.ResultsPath),
		nullableString(run.ReportPath),
		nullableString(run.ErrorMessage),
		formatTime(run.StartedAt),
		formatTime(finished),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Get fetches a run by run id. A missing run returns nil, nil.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns matching runs, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Run, error) {
	var (
		where []string
		args  []any
	)
	if filter.Subject != "" {
		where = append(where, "subject = ?")
		args = append(args, filter.Subject)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

// StatusCounts returns the number of recorded runs per status.
func (s *Store) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		inputPath   sql.NullString
		resultsPath sql.NullString
		reportPath  sql.NullString
		errMessage  sql.NullString
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&run.Subject,
		&run.Mode,
		&run.Status,
		&inputPath,
		&run.ReviewCount,
		&run.DroppedCount,
		&run.LabelledCount,
		&run.FailedBatches,
		&resultsPath,
		&reportPath,
		&errMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	run.InputPath = inputPath.String
	run.ResultsPath = resultsPath.String
	run.ReportPath = reportPath.String
	run.ErrorMessage = errMessage.String
	if t, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = t
	}
	if t, err := parseTimeString(finishedRaw); err == nil {
		run.FinishedAt = t
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// formatTime uses a fixed-width layout so started_at sorts lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
