// Package checkpoint persists partial batch progress so an interrupted run
// can be inspected or resumed. Every write is a full, deterministic rewrite
// of the snapshot through a temp file and rename, taken under a file lock.
package checkpoint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gofrs/flock"

	"reviewlens/internal/fileutil"
	"reviewlens/internal/results"
)

// Version is the snapshot schema version.
const Version = 1

// Batch status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ErrNotFound is returned by Load when no checkpoint exists.
var ErrNotFound = errors.New("checkpoint not found")

// BatchEntry records the outcome of one finished batch. Records are kept
// for successful batches only.
type BatchEntry struct {
	Index    int              `json:"index"`
	Start    int              `json:"start"`
	End      int              `json:"end"`
	Status   string           `json:"status"`
	Reason   string           `json:"reason,omitempty"`
	Attempts int              `json:"attempts,omitempty"`
	Records  []results.Record `json:"records,omitempty"`
}

// Snapshot is the persisted progress of one run.
type Snapshot struct {
	Version     int          `json:"version"`
	RunID       string       `json:"run_id"`
	Source      string       `json:"source"`
	InputDigest string       `json:"input_digest"`
	BatchSize   int          `json:"batch_size"`
	BatchCount  int          `json:"batch_count"`
	Batches     []BatchEntry `json:"batches"`
}

// Completed returns the number of finished batches.
func (s *Snapshot) Completed() int {
	return len(s.Batches)
}

// Matches reports whether the snapshot was taken for the same input split
// the same way.
func (s *Snapshot) Matches(source, digest string, batchSize, batchCount int) bool {
	return s.Version == Version &&
		s.Source == source &&
		s.InputDigest == digest &&
		s.BatchSize == batchSize &&
		s.BatchCount == batchCount
}

// Succeeded returns the successful batch entries in ascending index order.
func (s *Snapshot) Succeeded() []BatchEntry {
	var out []BatchEntry
	for _, b := range s.Batches {
		if b.Status == StatusOK {
			out = append(out, b)
		}
	}
	return out
}

// Digest fingerprints the ordered input so a checkpoint is only reused for
// identical input.
func Digest(ids, texts []string) string {
	h := sha256.New()
	for i := range ids {
		var text string
		if i < len(texts) {
			text = texts[i]
		}
		fmt.Fprintf(h, "%d:%s\x00%d:%s\x00", len(ids[i]), ids[i], len(text), text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Writer rewrites a checkpoint file.
type Writer struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

// NewWriter returns a writer for path. The parent directory is created on
// first write.
func NewWriter(path string) *Writer {
	return &Writer{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the checkpoint file path.
func (w *Writer) Path() string { return w.path }

// Write replaces the checkpoint with snap. Batches are sorted by index so
// equal snapshots produce identical bytes.
func (w *Writer) Write(snap Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap.Version = Version
	snap.Batches = slices.Clone(snap.Batches)
	slices.SortFunc(snap.Batches, func(a, b BatchEntry) int { return a.Index - b.Index })
	if snap.Batches == nil {
		snap.Batches = []BatchEntry{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}
	if err := w.lock.Lock(); err != nil {
		return fmt.Errorf("lock checkpoint: %w", err)
	}
	defer func() { _ = w.lock.Unlock() }()

	if err := fileutil.WriteFileAtomic(w.path, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint. It returns ErrNotFound when path does not exist.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	return &snap, nil
}
