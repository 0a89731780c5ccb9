package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestTeeCollapsesNilMembers(t *testing.T) {
	if _, ok := tee(nil, nil).(nopHandler); !ok {
		t.Fatal("expected nop handler when every member is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if tee(nil, inner) != inner {
		t.Fatal("expected a single member to be returned unwrapped")
	}
}

func TestTeeKeepsPerMemberLevels(t *testing.T) {
	var console, file bytes.Buffer
	h := tee(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be enabled through the file member")
	}

	logger := slog.New(h).With(String(FieldRunID, "run-1"))
	logger.Debug("batch queued")
	logger.Info("batch done")

	if strings.Contains(console.String(), "batch queued") {
		t.Fatalf("console received a debug record: %s", console.String())
	}
	if !strings.Contains(console.String(), "batch done") || !strings.Contains(file.String(), "batch queued") {
		t.Fatalf("missing records: console=%q file=%q", console.String(), file.String())
	}
	if !strings.Contains(file.String(), `"run_id":"run-1"`) {
		t.Fatalf("attrs not propagated: %s", file.String())
	}
}
