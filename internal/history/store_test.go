package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"reviewlens/internal/history"
	"reviewlens/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.OpenPath(filepath.Join(t.TempDir(), history.FileName))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenUsesLogDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if want := filepath.Join(cfg.Paths.LogDir, history.FileName); store.Path() != want {
		t.Fatalf("path = %s, want %s", store.Path(), want)
	}
}

func TestRecordAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	run := &history.Run{
		RunID:         "run-1",
		Subject:       "Otel Çınar",
		Mode:          "classify",
		Status:        "partial",
		ReviewCount:   10,
		DroppedCount:  2,
		LabelledCount: 8,
		FailedBatches: 1,
		ReportPath:    "/tmp/report.json",
		StartedAt:     started,
		FinishedAt:    started.Add(time.Minute),
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Subject != "Otel Çınar" || got.LabelledCount != 8 || got.ReportPath != "/tmp/report.json" {
		t.Fatalf("got %+v", got)
	}
	if !got.StartedAt.Equal(started) || got.FinishedAt.Sub(got.StartedAt) != time.Minute {
		t.Fatalf("times = %s .. %s", got.StartedAt, got.FinishedAt)
	}
	if got.InputPath != "" || got.ErrorMessage != "" {
		t.Fatalf("empty fields should round-trip as empty: %+v", got)
	}

	run.Status = "success"
	run.FailedBatches = 0
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record again: %v", err)
	}
	got, _ = store.Get(ctx, "run-1")
	if got.Status != "success" || got.FailedBatches != 0 {
		t.Fatalf("re-record did not update: %+v", got)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing = %+v, %v", missing, err)
	}
}

func TestRecordRequiresRunID(t *testing.T) {
	store := openStore(t)
	if err := store.Record(context.Background(), &history.Run{Subject: "x"}); err == nil {
		t.Fatal("expected error without run id")
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	runs := []history.Run{
		{RunID: "a", Subject: "Otel A", Mode: "classify", Status: "success", StartedAt: base},
		{RunID: "b", Subject: "Otel B", Mode: "annotate", Status: "partial", StartedAt: base.Add(time.Hour)},
		{RunID: "c", Subject: "Otel A", Mode: "annotate", Status: "failed", ErrorMessage: "not ready", StartedAt: base.Add(2 * time.Hour)},
	}
	for i := range runs {
		if err := store.Record(ctx, &runs[i]); err != nil {
			t.Fatalf("Record %s: %v", runs[i].RunID, err)
		}
	}

	all, err := store.List(ctx, history.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].RunID != "c" || all[2].RunID != "a" {
		t.Fatalf("order = %v", runIDs(all))
	}

	subject, _ := store.List(ctx, history.Filter{Subject: "Otel A"})
	if len(subject) != 2 || subject[0].ErrorMessage != "not ready" {
		t.Fatalf("subject filter = %v", runIDs(subject))
	}
	limited, _ := store.List(ctx, history.Filter{Limit: 1})
	if len(limited) != 1 || limited[0].RunID != "c" {
		t.Fatalf("limit = %v", runIDs(limited))
	}
	partial, _ := store.List(ctx, history.Filter{Status: "partial"})
	if len(partial) != 1 || partial[0].RunID != "b" {
		t.Fatalf("status filter = %v", runIDs(partial))
	}

	counts, err := store.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts: %v", err)
	}
	if counts["success"] != 1 || counts["partial"] != 1 || counts["failed"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.FileName)
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := store.Record(context.Background(), &history.Run{RunID: "keep", Subject: "x", Mode: "classify", Status: "success"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	_ = store.Close()

	again, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	got, err := again.Get(context.Background(), "keep")
	if err != nil || got == nil {
		t.Fatalf("after reopen got %+v, %v", got, err)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 9"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	_ = db.Close()

	_, err = history.OpenPath(path)
	if !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func runIDs(runs []history.Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.RunID
	}
	return out
}
