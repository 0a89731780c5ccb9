package checkpoint

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reviewlens/internal/labels"
	"reviewlens/internal/results"
	"reviewlens/internal/vocabulary"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		RunID:       "run-1",
		Source:      string(labels.OriginAnnotator),
		InputDigest: Digest([]string{"1", "2", "3"}, []string{"a", "b", "c"}),
		BatchSize:   2,
		BatchCount:  2,
		Batches: []BatchEntry{
			{Index: 1, Start: 2, End: 3, Status: StatusFailed, Reason: "timeout", Attempts: 1},
			{Index: 0, Start: 0, End: 2, Status: StatusOK, Attempts: 1, Records: []results.Record{
				{ID: "1", Origin: labels.OriginAnnotator, Aspects: map[string]vocabulary.Leaf{}},
			}},
		},
	}
}

func TestWriteIsDeterministicAndSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.checkpoint.json")
	w := NewWriter(path)
	if err := w.Write(sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := w.Write(sampleSnapshot()); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated writes of the same snapshot must be byte-identical")
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file left behind: %v", err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Version != Version || snap.Completed() != 2 || snap.Batches[0].Index != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	ok := snap.Succeeded()
	if len(ok) != 1 || ok[0].Index != 0 || len(ok[0].Records) != 1 {
		t.Fatalf("unexpected succeeded batches %+v", ok)
	}
}

func TestMatches(t *testing.T) {
	snap := sampleSnapshot()
	snap.Version = Version
	digest := snap.InputDigest
	if !snap.Matches("annotator", digest, 2, 2) {
		t.Fatal("expected match")
	}
	for name, ok := range map[string]bool{
		"source":  snap.Matches("classifier", digest, 2, 2),
		"digest":  snap.Matches("annotator", "other", 2, 2),
		"size":    snap.Matches("annotator", digest, 3, 2),
		"batches": snap.Matches("annotator", digest, 2, 1),
	} {
		if ok {
			t.Fatalf("%s mismatch should not match", name)
		}
	}
}

func TestDigestSeparatesFields(t *testing.T) {
	a := Digest([]string{"1", "2"}, []string{"ab", "c"})
	b := Digest([]string{"1", "2"}, []string{"a", "bc"})
	if a == b {
		t.Fatal("digest must distinguish field boundaries")
	}
	if a != Digest([]string{"1", "2"}, []string{"ab", "c"}) {
		t.Fatal("digest must be stable")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
