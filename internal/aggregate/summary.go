// Package aggregate folds per-review label sets into per-aspect statistics:
// polarity counts plus the most frequent positive and negative reasons.
package aggregate

import (
	"slices"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
	"reviewlens/internal/labels"
)

// TopReasons is how many reasons are reported per polarity.
const TopReasons = 2

// AspectSummary is the aggregated view of one aspect across all reviews.
type AspectSummary struct {
	Aspect          aspect.ID `json:"-"`
	Key             string    `json:"aspect"`
	Positive        int       `json:"positive"`
	Negative        int       `json:"negative"`
	Neutral         int       `json:"neutral"`
	PositiveReasons []string  `json:"positive_reasons"`
	NegativeReasons []string  `json:"negative_reasons"`
}

// Mentions is the total number of reviews mentioning the aspect.
func (s AspectSummary) Mentions() int {
	return s.Positive + s.Negative + s.Neutral
}

// Summarize aggregates label sets into one summary per mentioned aspect, in
// ascending aspect order. Aspects with no mentions are omitted and empty
// input yields an empty, non-nil slice.
func Summarize(sources []labels.LabelSource) []AspectSummary {
	out := make([]AspectSummary, 0, aspect.Count)
	for _, a := range aspect.All() {
		var (
			summary  = AspectSummary{Aspect: a.ID, Key: a.Key}
			positive reasonCounter
			negative reasonCounter
		)
		for _, src := range sources {
			if src == nil {
				continue
			}
			mention, ok := src.Mention(a.ID)
			if !ok {
				continue
			}
			switch mention.Sentiment {
			case labelcodec.Positive:
				summary.Positive++
				positive.add(mention.Reasons...)
			case labelcodec.Negative:
				summary.Negative++
				negative.add(mention.Reasons...)
			case labelcodec.Neutral:
				summary.Neutral++
			}
		}
		if summary.Mentions() == 0 {
			continue
		}
		summary.PositiveReasons = positive.top(TopReasons)
		summary.NegativeReasons = negative.top(TopReasons)
		out = append(out, summary)
	}
	return out
}

// reasonCounter is a multiset that remembers first-seen order for ties.
type reasonCounter struct {
	order  []string
	counts map[string]int
}

func (c *reasonCounter) add(reasons ...string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	for _, r := range reasons {
		if r == "" {
			continue
		}
		if _, seen := c.counts[r]; !seen {
			c.order = append(c.order, r)
		}
		c.counts[r]++
	}
}

// top returns up to n reasons by descending frequency; ties keep first-seen
// order. The result is never nil.
func (c *reasonCounter) top(n int) []string {
	ranked := slices.Clone(c.order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return c.counts[b] - c.counts[a]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []string{}
	}
	return ranked
}

// Table indexes summaries by aspect wire key, the shape written to analysis
// reports.
func Table(summaries []AspectSummary) map[string]AspectSummary {
	out := make(map[string]AspectSummary, len(summaries))
	for _, s := range summaries {
		out[s.Key] = s
	}
	return out
}
