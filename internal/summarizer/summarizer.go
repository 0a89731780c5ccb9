// Package summarizer turns an aggregated aspect table into a short prose
// summary using a language model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewlens/internal/aggregate"
)

const systemPrompt = `Sen otel yorumlarından çıkarılan aspect değerlendirmelerine göre otel için Türkçe genel bir özet yazan bir asistansın.
Kurallar:
- Sayısal değerleri yazma; niteliksel anlat.
- Güçlü yönleri ve geliştirilmesi gereken alanları dengeli şekilde belirt.
- 3-4 paragraf, akıcı ve doğal bir dil kullan.
- Gereksiz tekrar yapma.`

// ErrNothingToSummarize is returned when no aspect was mentioned.
var ErrNothingToSummarize = errors.New("summarizer: no aspect mentions")

// Backend performs one free-text chat completion.
type Backend interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Result pairs the aspect text the model saw with its reply.
type Result struct {
	AspectText string `json:"aspect_text"`
	Summary    string `json:"summary"`
	Backend    string `json:"backend"`
}

// Summarizer renders prompts and delegates to a Backend.
type Summarizer struct {
	backend Backend
}

// New returns a Summarizer. A nil backend disables summaries.
func New(backend Backend) *Summarizer {
	return &Summarizer{backend: backend}
}

// Enabled reports whether a backend is configured.
func (s *Summarizer) Enabled() bool {
	return s != nil && s.backend != nil
}

// UserPrompt renders the per-subject request.
func UserPrompt(subject, aspectText string) string {
	return fmt.Sprintf(`Otel: %s

Aspect değerlendirmeleri:
%s

Yukarıdaki aspect değerlendirmelerine göre otel için genel bir özet yaz.
Not: Sayısal değerleri metne taşımadan, niteliksel ifadelerle anlat.`, subject, aspectText)
}

// Summarize writes a summary for subject. Only qualitative verdicts and
// reason names reach the model, never bare counts.
func (s *Summarizer) Summarize(ctx context.Context, subject string, summaries []aggregate.AspectSummary) (Result, error) {
	if !s.Enabled() {
		return Result{}, errors.New("summarizer: no backend configured")
	}
	aspectText := aggregate.Render(summaries)
	if strings.TrimSpace(aspectText) == "" {
		return Result{}, ErrNothingToSummarize
	}
	reply, err := s.backend.Generate(ctx, systemPrompt, UserPrompt(subject, aspectText))
	if err != nil {
		return Result{AspectText: aspectText}, fmt.Errorf("summarizer %s: %w", s.backend.Name(), err)
	}
	return Result{AspectText: aspectText, Summary: strings.TrimSpace(reply), Backend: s.backend.Name()}, nil
}
