package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
	"reviewlens/internal/labels"
	"reviewlens/internal/vocabulary"
)

func sampleSources(t *testing.T) []labels.LabelSource {
	t.Helper()
	vec := make([]int, aspect.Count)
	vec[aspect.Cleanliness.Index()] = labelcodec.Encode(labelcodec.Positive, labelcodec.Quality)
	classified, err := labels.NewClassifierDecoded("10", vec)
	if err != nil {
		t.Fatalf("NewClassifierDecoded: %v", err)
	}
	annotated := labels.NewAnnotatorDecoded("11", map[aspect.ID]vocabulary.Leaf{
		aspect.Staff: {Sentiment: labelcodec.Negative, Reasons: []string{"personel_kaba"}},
	})
	return []labels.LabelSource{classified, annotated}
}

func TestWriterRoundTripsBothFormats(t *testing.T) {
	for _, format := range []Format{FormatJSONL, FormatText} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+string(format))
			w, err := Create(path, format)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			for _, src := range sampleSources(t) {
				if err := w.Append(FromSource(src)); err != nil {
					t.Fatalf("Append: %v", err)
				}
			}
			if w.Count() != 2 {
				t.Fatalf("Count = %d", w.Count())
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			records, err := ReadRecords(path)
			if err != nil {
				t.Fatalf("ReadRecords: %v", err)
			}
			if len(records) != 2 || records[0].ID != "10" || len(records[0].ClassIDs) != aspect.Count {
				t.Fatalf("unexpected records %+v", records)
			}

			sources, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if len(sources) != 2 {
				t.Fatalf("expected 2 sources, got %d", len(sources))
			}
			m, ok := sources[0].Mention(aspect.Cleanliness)
			if !ok || sources[0].Origin() != labels.OriginClassifier || !reflect.DeepEqual(m.Reasons, []string{"kalite"}) {
				t.Fatalf("unexpected classifier source %+v", m)
			}
			m, ok = sources[1].Mention(aspect.Staff)
			if !ok || sources[1].ReviewID() != "11" || m.Sentiment != labelcodec.Negative {
				t.Fatalf("unexpected annotator source %+v", m)
			}
		})
	}
}

func TestTextFormatLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := Create(path, FormatText)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Append(FromSource(sampleSources(t)[1])); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := `[REVIEW ID = 11] {"origin":"annotator","aspects":{"6":{"sentiment":1,"reasons":["personel_kaba"]}}}` + "\n"
	if string(data) != want {
		t.Fatalf("text line = %q, want %q", data, want)
	}
}

func TestCreateRefusesLockedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	first, err := Create(path, FormatJSONL)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer first.Close()
	if _, err := Create(path, FormatJSONL); err == nil || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestReadFileRejectsUnknownOrigin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"1","origin":"oracle","aspects":{}}`+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected error for unknown origin")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatJSONL {
		t.Fatalf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDiagnosticsRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.jsonl")
	d, err := OpenDiagnostics(path, "run-1")
	if err != nil {
		t.Fatalf("OpenDiagnostics: %v", err)
	}
	d.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	if err := d.Record(Entry{Kind: KindParseError, BatchIndex: 1, Raw: "not json <b>"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := d.Record(Entry{Kind: KindMissingBatch, BatchIndex: 2, Reason: "missing_batch_result"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if d.Count(KindParseError) != 1 || d.Count(KindBatchFailed) != 0 {
		t.Fatal("unexpected counts")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", data)
	}
	var first Entry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.RunID != "run-1" || first.Raw != "not json <b>" || first.Time.IsZero() {
		t.Fatalf("unexpected entry %+v", first)
	}
	if !strings.Contains(lines[0], "<b>") {
		t.Fatalf("raw payload should not be HTML-escaped: %s", lines[0])
	}

	var nilDiag *Diagnostics
	if err := nilDiag.Record(Entry{Kind: KindBatchFailed}); err != nil {
		t.Fatalf("nil Record: %v", err)
	}
}
