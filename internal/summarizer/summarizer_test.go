package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reviewlens/internal/aggregate"
	"reviewlens/internal/aspect"
	"reviewlens/internal/services/ollama"
)

type fakeBackend struct {
	user  string
	reply string
	err   error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(_ context.Context, _, userPrompt string) (string, error) {
	f.user = userPrompt
	return f.reply, f.err
}

func sampleSummaries() []aggregate.AspectSummary {
	return []aggregate.AspectSummary{
		{Aspect: aspect.Cleanliness, Key: "temizlik", Positive: 7, Negative: 1, PositiveReasons: []string{"oda_temiz"}, NegativeReasons: []string{"toz_kir_birikimi"}},
	}
}

func TestSummarizePromptCarriesVerdictNotCounts(t *testing.T) {
	backend := &fakeBackend{reply: " Otel temizliğiyle öne çıkıyor. "}
	res, err := New(backend).Summarize(context.Background(), "Deniz Otel", sampleSummaries())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if res.Summary != "Otel temizliğiyle öne çıkıyor." {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
	if !strings.Contains(backend.user, "Deniz Otel") || !strings.Contains(backend.user, aggregate.VerdictVeryPositive) {
		t.Fatalf("prompt missing subject or verdict: %q", backend.user)
	}
	if strings.Contains(backend.user, "7") {
		t.Fatalf("prompt must not carry raw counts: %q", backend.user)
	}
}

func TestSummarizeNothingToSay(t *testing.T) {
	_, err := New(&fakeBackend{}).Summarize(context.Background(), "x", nil)
	if !errors.Is(err, ErrNothingToSummarize) {
		t.Fatalf("expected ErrNothingToSummarize, got %v", err)
	}
}

func TestSummarizeDisabled(t *testing.T) {
	s := New(nil)
	if s.Enabled() {
		t.Fatal("expected disabled summarizer")
	}
	if _, err := s.Summarize(context.Background(), "x", sampleSummaries()); err == nil {
		t.Fatal("expected error without backend")
	}
}

func TestSummarizeKeepsAspectTextOnFailure(t *testing.T) {
	res, err := New(&fakeBackend{err: errors.New("down")}).Summarize(context.Background(), "x", sampleSummaries())
	if err == nil {
		t.Fatal("expected error")
	}
	if res.AspectText == "" {
		t.Fatal("aspect text should be returned with the error")
	}
}

func TestOllamaBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"content": "özet"}})
	}))
	defer server.Close()

	backend := OllamaBackend{Client: ollama.NewClient(ollama.Config{BaseURL: server.URL})}
	res, err := New(backend).Summarize(context.Background(), "Otel", sampleSummaries())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if res.Summary != "özet" || res.Backend != "ollama:otel-ozet" {
		t.Fatalf("unexpected result %+v", res)
	}
}
