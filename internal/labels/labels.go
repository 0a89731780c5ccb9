// Package labels unifies the two labelling paths behind one LabelSource
// interface so aggregation never needs to know which backend produced a
// review's labels.
package labels

import (
	"slices"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
	"reviewlens/internal/vocabulary"
)

// Origin names the backend that produced a label set.
type Origin string

const (
	OriginClassifier Origin = "classifier"
	OriginAnnotator  Origin = "annotator"
)

// Mention is one labelled aspect of one review.
type Mention struct {
	Sentiment labelcodec.Sentiment
	// Reasons holds reason identifiers: reason-code keys on the classifier
	// path, vocabulary tags on the annotator path.
	Reasons []string
}

// LabelSource exposes the per-aspect labels of a single review.
type LabelSource interface {
	ReviewID() string
	Origin() Origin
	// Mention returns the label for an aspect, or false when the review does
	// not mention it.
	Mention(id aspect.ID) (Mention, bool)
}

// ClassifierDecoded is a review labelled by the classification service.
type ClassifierDecoded struct {
	ID       string
	ClassIDs []int
	pairs    map[aspect.ID]labelcodec.Pair
}

// NewClassifierDecoded decodes a classifier vector. It fails when the vector
// has the wrong length or carries an out-of-range class id.
func NewClassifierDecoded(reviewID string, classIDs []int) (*ClassifierDecoded, error) {
	pairs, err := labelcodec.DecodeVector(classIDs)
	if err != nil {
		return nil, err
	}
	return &ClassifierDecoded{ID: reviewID, ClassIDs: slices.Clone(classIDs), pairs: pairs}, nil
}

func (c *ClassifierDecoded) ReviewID() string { return c.ID }

func (c *ClassifierDecoded) Origin() Origin { return OriginClassifier }

func (c *ClassifierDecoded) Mention(id aspect.ID) (Mention, bool) {
	pair, ok := c.pairs[id]
	if !ok {
		return Mention{}, false
	}
	return Mention{Sentiment: pair.Sentiment, Reasons: []string{pair.Reason.Key()}}, true
}

// Pairs returns the decoded pairs keyed by aspect.
func (c *ClassifierDecoded) Pairs() map[aspect.ID]labelcodec.Pair {
	return c.pairs
}

// AnnotatorDecoded is a review labelled by the annotator after validation.
type AnnotatorDecoded struct {
	ID     string
	Leaves map[aspect.ID]vocabulary.Leaf
}

// NewAnnotatorDecoded wraps validated leaves. A nil map is treated as a
// review with no surviving aspects.
func NewAnnotatorDecoded(reviewID string, leaves map[aspect.ID]vocabulary.Leaf) *AnnotatorDecoded {
	if leaves == nil {
		leaves = map[aspect.ID]vocabulary.Leaf{}
	}
	return &AnnotatorDecoded{ID: reviewID, Leaves: leaves}
}

func (a *AnnotatorDecoded) ReviewID() string { return a.ID }

func (a *AnnotatorDecoded) Origin() Origin { return OriginAnnotator }

func (a *AnnotatorDecoded) Mention(id aspect.ID) (Mention, bool) {
	leaf, ok := a.Leaves[id]
	if !ok {
		return Mention{}, false
	}
	return Mention{Sentiment: leaf.Sentiment, Reasons: slices.Clone(leaf.Reasons)}, true
}

// MentionedAspects lists the aspects src mentions in ascending order.
func MentionedAspects(src LabelSource) []aspect.ID {
	var out []aspect.ID
	for _, a := range aspect.All() {
		if _, ok := src.Mention(a.ID); ok {
			out = append(out, a.ID)
		}
	}
	return out
}
