package pipeline

import (
	"context"
	"time"

	"reviewlens/internal/labels"
	"reviewlens/internal/results"
	"reviewlens/internal/services"
)

// Item is one review queued for labelling.
type Item struct {
	ID   string
	Text string
}

// Batch is the unit handed to a Processor.
type Batch struct {
	Span
	Items []Item
}

// IDs returns the review ids of the batch in order.
func (b Batch) IDs() []string {
	out := make([]string, len(b.Items))
	for i, it := range b.Items {
		out[i] = it.ID
	}
	return out
}

// Texts returns the review texts of the batch in order.
func (b Batch) Texts() []string {
	out := make([]string, len(b.Items))
	for i, it := range b.Items {
		out[i] = it.Text
	}
	return out
}

// Issue is a review-level problem found while decoding a successful batch.
type Issue struct {
	Kind     results.Kind
	ReviewID string
	Detail   string
	Raw      string
}

// Output is what a Processor produces for one batch.
type Output struct {
	Sources []labels.LabelSource
	Issues  []Issue
}

// Processor makes the remote call for one batch and decodes the response.
// Implementations must honour ctx cancellation.
type Processor interface {
	Origin() labels.Origin
	Process(ctx context.Context, batch Batch) (Output, error)
}

// Status is the final state of a batch.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusMissing Status = "missing"
)

// BatchResult is the outcome of one batch. Missing marks a batch whose
// labels are absent from the assembled output, whether it failed or never
// reported; Reason keeps the tagged cause.
type BatchResult struct {
	Span
	Status   Status
	Reason   string
	Missing  bool
	Err      error
	Attempts int
	Duration time.Duration
	Resumed  bool
	Sources  []labels.LabelSource
	Issues   []Issue
}

// OK reports whether the batch produced labels.
func (r BatchResult) OK() bool {
	return r.Status == StatusOK
}

// MissingBatchResult is the placeholder for a batch that never completed.
func MissingBatchResult(span Span) BatchResult {
	return BatchResult{
		Span:    span,
		Status:  StatusMissing,
		Reason:  services.ReasonMissingResult,
		Missing: true,
		Sources: []labels.LabelSource{},
	}
}

// Outcome holds every batch slot of a run.
type Outcome struct {
	Origin      labels.Origin
	InputDigest string
	BatchSize   int
	Items       int
	Elapsed     time.Duration
	spans       []Span
	slots       []*BatchResult
}

// BatchCount returns the number of batches.
func (o *Outcome) BatchCount() int {
	return len(o.slots)
}

// Assembled returns one result per batch in ascending index order, with a
// missing placeholder for every slot that was never filled.
func (o *Outcome) Assembled() []BatchResult {
	out := make([]BatchResult, len(o.slots))
	for i, slot := range o.slots {
		if slot == nil {
			out[i] = MissingBatchResult(o.spans[i])
			continue
		}
		out[i] = *slot
	}
	return out
}

// LabelSources returns the labels of all successful batches in input order.
func (o *Outcome) LabelSources() []labels.LabelSource {
	var out []labels.LabelSource
	for _, slot := range o.slots {
		if slot != nil && slot.OK() {
			out = append(out, slot.Sources...)
		}
	}
	if out == nil {
		out = []labels.LabelSource{}
	}
	return out
}

// Failed returns the batches that did not succeed, in index order.
func (o *Outcome) Failed() []BatchResult {
	var out []BatchResult
	for _, r := range o.Assembled() {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
