package results

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// Format selects the result file layout.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatText  Format = "text"
)

// ParseFormat maps a configuration value onto a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSONL, "":
		return FormatJSONL, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown result format %q", value)
	}
}

// Writer appends records to a result file. A sidecar lock file keeps a
// second process from writing the same file concurrently.
type Writer struct {
	mu     sync.Mutex
	path   string
	format Format
	file   *os.File
	buf    *bufio.Writer
	lock   *flock.Flock
	count  int
}

// Create truncates path and opens it for appending records.
func Create(path string, format Format) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create result directory: %w", err)
	}
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire result lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("result file %s is locked by another run", path)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open result file: %w", err)
	}
	return &Writer{
		path:   path,
		format: format,
		file:   file,
		buf:    bufio.NewWriter(file),
		lock:   lock,
	}, nil
}

// Path returns the result file path.
func (w *Writer) Path() string { return w.path }

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Append writes one record.
func (w *Writer) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	line, err := encodeLine(rec, w.format)
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(line); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	w.count++
	return nil
}

// Close flushes buffered records and releases the lock.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	_ = w.lock.Unlock()
	_ = os.Remove(w.path + ".lock")
	if flushErr != nil {
		return fmt.Errorf("flush results: %w", flushErr)
	}
	return closeErr
}

func encodeLine(rec Record, format Format) ([]byte, error) {
	if format == FormatText {
		id := rec.ID
		rec.ID = ""
		payload, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encode result: %w", err)
		}
		return fmt.Appendf(nil, "%s%s] %s\n", textPrefix, id, payload), nil
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return append(payload, '\n'), nil
}
