// Package annotator sends review batches to a language model and returns the
// raw nested annotation payload for validation.
package annotator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"reviewlens/internal/services"
	"reviewlens/internal/vocabulary"
)

// Input is one review as sent to the model. ID is the review's position in
// the batch and comes back as the outer key of the reply.
type Input struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Backend performs one JSON completion.
type Backend interface {
	Name() string
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Annotator builds prompts and delegates to a Backend.
type Annotator struct {
	backend Backend
	system  string
}

// New returns an Annotator whose prompt lists the tags of table.
func New(backend Backend, table *vocabulary.Table) *Annotator {
	if table == nil {
		table = vocabulary.Default()
	}
	return &Annotator{backend: backend, system: SystemPrompt(table)}
}

// Backend returns the name of the configured backend.
func (a *Annotator) Backend() string {
	if a.backend == nil {
		return ""
	}
	return a.backend.Name()
}

// Annotate sends one batch and returns the model's raw payload. The payload
// is not validated here.
func (a *Annotator) Annotate(ctx context.Context, inputs []Input) (string, error) {
	if a.backend == nil {
		return "", services.Wrap(services.ErrConfiguration, "annotator", "annotate", "no backend configured", nil)
	}
	if len(inputs) == 0 {
		return "", errors.New("annotator: empty batch")
	}
	encoded, err := json.Marshal(inputs)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "annotator", "annotate", "encode inputs", err)
	}
	raw, err := a.backend.CompleteJSON(ctx, a.system, string(encoded))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
