package pipeline

import (
	"context"
	"fmt"

	"reviewlens/internal/labels"
	"reviewlens/internal/services"
)

// Predictor returns one class-id vector per text.
type Predictor interface {
	PredictBatch(ctx context.Context, texts []string) ([][]int, error)
}

// ClassifierProcessor labels batches with the fine-tuned classifier.
type ClassifierProcessor struct {
	Predictor Predictor
}

func (ClassifierProcessor) Origin() labels.Origin { return labels.OriginClassifier }

// Process predicts the batch. A single undecodable vector fails the whole
// batch since positions can no longer be trusted.
func (p ClassifierProcessor) Process(ctx context.Context, batch Batch) (Output, error) {
	vectors, err := p.Predictor.PredictBatch(ctx, batch.Texts())
	if err != nil {
		return Output{}, err
	}
	if len(vectors) != len(batch.Items) {
		return Output{}, services.Wrap(services.ErrDecode, "pipeline", "classify",
			fmt.Sprintf("got %d vectors for %d reviews", len(vectors), len(batch.Items)), nil)
	}
	sources := make([]labels.LabelSource, 0, len(vectors))
	for i, vector := range vectors {
		src, err := labels.NewClassifierDecoded(batch.Items[i].ID, vector)
		if err != nil {
			return Output{}, services.Wrap(services.ErrDecode, "pipeline", "classify",
				fmt.Sprintf("review %s", batch.Items[i].ID), err)
		}
		sources = append(sources, src)
	}
	return Output{Sources: sources}, nil
}
