package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"reviewlens/internal/annotator"
	"reviewlens/internal/labels"
	"reviewlens/internal/results"
	"reviewlens/internal/services"
	"reviewlens/internal/vocabulary"
)

// Annotator sends a batch to the language model and returns its raw payload.
type Annotator interface {
	Annotate(ctx context.Context, inputs []annotator.Input) (string, error)
}

// AnnotatorProcessor labels batches with a language model and validates the
// returned payload against the vocabulary.
type AnnotatorProcessor struct {
	Annotator Annotator
	Validator *vocabulary.Validator
}

func (AnnotatorProcessor) Origin() labels.Origin { return labels.OriginAnnotator }

// Process annotates one batch. Reviews are sent under their batch position
// so repeated review ids cannot collide in the reply. An undecodable payload
// fails the batch with the payload kept for the diagnostic log. Review-level
// problems exclude only the affected reviews.
func (p AnnotatorProcessor) Process(ctx context.Context, batch Batch) (Output, error) {
	inputs := make([]annotator.Input, len(batch.Items))
	for i, it := range batch.Items {
		inputs[i] = annotator.Input{ID: i, Text: it.Text}
	}
	raw, err := p.Annotator.Annotate(ctx, inputs)
	if err != nil {
		return Output{}, err
	}
	validator := p.Validator
	if validator == nil {
		validator = vocabulary.NewValidator(nil)
	}
	parsed, err := validator.Parse([]byte(raw))
	if err != nil {
		return Output{}, services.Wrap(services.ErrDecode, "pipeline", "annotate", "parse payload", err)
	}

	var out Output
	rejected := make([]bool, len(batch.Items))
	for _, issue := range parsed.Issues {
		detail := fmt.Sprintf("%s: %s", issue.Kind, issue.Detail)
		reviewID := ""
		if pos, ok := batch.position(issue.ReviewID); ok {
			rejected[pos] = true
			reviewID = batch.Items[pos].ID
		} else {
			detail = fmt.Sprintf("payload key %q: %s", issue.ReviewID, detail)
		}
		out.Issues = append(out.Issues, Issue{
			Kind:     results.KindValidationIssue,
			ReviewID: reviewID,
			Detail:   detail,
			Raw:      raw,
		})
	}

	out.Sources = make([]labels.LabelSource, 0, len(batch.Items))
	for i, it := range batch.Items {
		leaves, ok := parsed.Reviews[strconv.Itoa(i)]
		if !ok {
			if !rejected[i] {
				out.Issues = append(out.Issues, Issue{
					Kind:     results.KindMissingReview,
					ReviewID: it.ID,
					Detail:   fmt.Sprintf("review absent from annotation payload (key %d)", i),
				})
			}
			continue
		}
		out.Sources = append(out.Sources, labels.NewAnnotatorDecoded(it.ID, leaves))
	}

	var extra []string
	for key := range parsed.Reviews {
		if _, ok := batch.position(key); !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		slices.Sort(extra)
		out.Issues = append(out.Issues, Issue{
			Kind:   results.KindUnexpectedID,
			Detail: "payload has keys not in the batch: " + strings.Join(extra, ", "),
		})
	}
	return out, nil
}

// position resolves a payload key to the batch position it was sent under.
// Only the canonical decimal form of an in-range position matches.
func (b Batch) position(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n >= len(b.Items) || strconv.Itoa(n) != key {
		return 0, false
	}
	return n, true
}
