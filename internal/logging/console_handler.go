package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// prettyHandler renders one header line per record followed by indented
// "- key: value" lines:
//
//	2026-01-02 15:04:05 INFO [pipeline] Otel Deniz · Run 1a2b3c4d (batch 3, classify) – batch failed
//	    - reason: timeout
type prettyHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	addSource bool
	attrs     []slog.Attr
	groups    []string
}

func newPrettyHandler(w io.Writer, level *slog.LevelVar, addSource bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, w: w, level: level, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(slices.Clip(h.attrs), attrs...)
	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(slices.Clip(h.groups), name)
	return &next
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var f fieldSet
	for _, a := range h.attrs {
		f.add(h.groups, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		f.add(h.groups, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}

	var buf bytes.Buffer
	buf.WriteString(ts.Local().Format(consoleTimeLayout))
	buf.WriteString(" " + levelLabel(r.Level))
	if c := f.take(FieldComponent); c != "" {
		buf.WriteString(" [" + c + "]")
	}
	if s := headline(f.take(FieldSubject), f.take(FieldRunID), f.take(FieldBatchIndex), f.take(FieldStage)); s != "" {
		buf.WriteString(" " + s)
	}
	buf.WriteString(" – " + msg)
	if h.addSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	buf.WriteByte('\n')
	for _, key := range f.keys {
		if v, ok := f.values[key]; ok {
			buf.WriteString("    - " + key + ": " + formatValue(v) + "\n")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// headline renders "Subject · Run 1a2b3c4d (batch 3, stage)", omitting
// whatever is missing.
func headline(subject, runID, batch, stage string) string {
	var detail []string
	if batch != "" {
		detail = append(detail, "batch "+batch)
	}
	if stage != "" {
		detail = append(detail, stage)
	}
	run := ""
	if runID != "" {
		run = "Run " + runID[:min(len(runID), 8)]
	}
	switch {
	case run != "" && len(detail) > 0:
		run += " (" + strings.Join(detail, ", ") + ")"
	case run == "":
		run = strings.Join(detail, ", ")
	}
	var parts []string
	for _, p := range []string{subject, run} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

// fieldSet keeps first-seen key order; a repeated key keeps its slot and
// takes the later value.
type fieldSet struct {
	keys   []string
	values map[string]slog.Value
}

func (f *fieldSet) add(groups []string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}
		for _, member := range v.Group() {
			f.add(groups, member)
		}
		return
	}
	key := strings.Join(append(slices.Clip(groups), a.Key), ".")
	if key == "" {
		return
	}
	if f.values == nil {
		f.values = make(map[string]slog.Value)
	}
	if _, seen := f.values[key]; !seen {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// take removes key from the field list and returns its rendered value.
func (f *fieldSet) take(key string) string {
	v, ok := f.values[key]
	if !ok {
		return ""
	}
	delete(f.values, key)
	return strings.TrimSpace(formatValue(v))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
