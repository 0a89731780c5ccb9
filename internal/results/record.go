package results

import (
	"fmt"
	"strconv"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labels"
	"reviewlens/internal/vocabulary"
)

// Record is the persisted form of one review's labels. Aspects are keyed by
// decimal aspect id, matching the annotation wire format.
type Record struct {
	ID       string                     `json:"id,omitempty"`
	Origin   labels.Origin              `json:"origin"`
	ClassIDs []int                      `json:"class_ids,omitempty"`
	Aspects  map[string]vocabulary.Leaf `json:"aspects"`
}

// FromSource converts a label source into a record.
func FromSource(src labels.LabelSource) Record {
	rec := Record{
		ID:      src.ReviewID(),
		Origin:  src.Origin(),
		Aspects: make(map[string]vocabulary.Leaf),
	}
	if c, ok := src.(*labels.ClassifierDecoded); ok {
		rec.ClassIDs = append([]int(nil), c.ClassIDs...)
	}
	for _, id := range labels.MentionedAspects(src) {
		m, _ := src.Mention(id)
		rec.Aspects[strconv.Itoa(int(id))] = vocabulary.Leaf{Sentiment: m.Sentiment, Reasons: m.Reasons}
	}
	return rec
}

// Source rebuilds the label source. Classifier records are decoded from their
// class ids; annotator records from their aspect map.
func (r Record) Source() (labels.LabelSource, error) {
	switch r.Origin {
	case labels.OriginClassifier:
		return labels.NewClassifierDecoded(r.ID, r.ClassIDs)
	case labels.OriginAnnotator:
		leaves := make(map[aspect.ID]vocabulary.Leaf, len(r.Aspects))
		for key, leaf := range r.Aspects {
			id, ok := aspect.Parse(key)
			if !ok {
				return nil, fmt.Errorf("review %s: unknown aspect %q", r.ID, key)
			}
			leaves[id] = leaf
		}
		return labels.NewAnnotatorDecoded(r.ID, leaves), nil
	default:
		return nil, fmt.Errorf("review %s: unknown origin %q", r.ID, r.Origin)
	}
}
