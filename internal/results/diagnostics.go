package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Kind classifies a diagnostic entry.
type Kind string

const (
	KindBatchFailed     Kind = "batch_failed"
	KindMissingBatch    Kind = "missing_batch"
	KindParseError      Kind = "parse_error"
	KindValidationIssue Kind = "validation_issue"
	KindMissingReview   Kind = "missing_review"
	KindUnexpectedID    Kind = "unexpected_review"
	KindPrepareDropped  Kind = "review_dropped"
)

// Entry is one diagnostic line.
type Entry struct {
	Time       time.Time `json:"ts"`
	RunID      string    `json:"run_id,omitempty"`
	Kind       Kind      `json:"kind"`
	BatchIndex int       `json:"batch_index"`
	ReviewID   string    `json:"review_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Attempts   int       `json:"attempts,omitempty"`
	Raw        string    `json:"raw,omitempty"`
}

// Diagnostics appends entries to a JSONL file. A nil *Diagnostics discards
// everything, so callers need not guard optional diagnostics.
type Diagnostics struct {
	mu     sync.Mutex
	path   string
	runID  string
	file   *os.File
	enc    *json.Encoder
	now    func() time.Time
	counts map[Kind]int
}

// OpenDiagnostics opens path for appending. Entries are stamped with runID.
func OpenDiagnostics(path, runID string) (*Diagnostics, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create diagnostics directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open diagnostics: %w", err)
	}
	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	return &Diagnostics{
		path:   path,
		runID:  runID,
		file:   file,
		enc:    enc,
		now:    time.Now,
		counts: make(map[Kind]int),
	}, nil
}

// Path returns the diagnostics file path, or "" for a nil receiver.
func (d *Diagnostics) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Record appends one entry.
func (d *Diagnostics) Record(e Entry) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if e.Time.IsZero() {
		e.Time = d.now().UTC()
	}
	if e.RunID == "" {
		e.RunID = d.runID
	}
	if err := d.enc.Encode(e); err != nil {
		return fmt.Errorf("write diagnostic: %w", err)
	}
	d.counts[e.Kind]++
	return nil
}

// Count returns how many entries of kind were recorded.
func (d *Diagnostics) Count(kind Kind) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[kind]
}

// Close closes the underlying file.
func (d *Diagnostics) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.Close()
}
