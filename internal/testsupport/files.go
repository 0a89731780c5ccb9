package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteReviews writes texts as a JSONL review file with ids 1..n and returns
// its path.
func WriteReviews(t testing.TB, dir, name string, texts ...string) string {
	t.Helper()

	var b strings.Builder
	for i, text := range texts {
		line, err := json.Marshal(map[string]any{"id": i + 1, "text": text})
		if err != nil {
			t.Fatalf("marshal review: %v", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
