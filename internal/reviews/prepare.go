package reviews

import (
	"unicode/utf8"

	"reviewlens/internal/textutil"
)

// DefaultMinLength is the shortest cleaned review, in runes, worth labelling.
const DefaultMinLength = 10

// PrepareOptions tune review preparation.
type PrepareOptions struct {
	MinLength int
	// DuplicateThreshold drops a review whose token fingerprint has at least
	// this cosine similarity with an earlier kept review. Zero disables it.
	DuplicateThreshold float64
}

// PrepareStats counts what preparation removed.
type PrepareStats struct {
	Input        int      `json:"input"`
	Kept         int      `json:"kept"`
	TooShort     int      `json:"too_short"`
	Duplicates   int      `json:"duplicates"`
	TooShortIDs  []string `json:"too_short_ids,omitempty"`
	DuplicateIDs []string `json:"duplicate_ids,omitempty"`
}

// Dropped is the number of reviews removed.
func (s PrepareStats) Dropped() int {
	return s.Input - s.Kept
}

// Prepare cleans every review, then drops short texts and near-duplicates.
// Input order is preserved.
func Prepare(in []Review, opts PrepareOptions) ([]Review, PrepareStats) {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	stats := PrepareStats{Input: len(in)}
	out := make([]Review, 0, len(in))
	dupes := textutil.NewDuplicateIndex(opts.DuplicateThreshold)
	for _, r := range in {
		cleaned := textutil.CleanReview(r.Text)
		if utf8.RuneCountInString(cleaned) < opts.MinLength {
			stats.TooShort++
			stats.TooShortIDs = append(stats.TooShortIDs, r.ID)
			continue
		}
		if dupes.Check(cleaned) {
			stats.Duplicates++
			stats.DuplicateIDs = append(stats.DuplicateIDs, r.ID)
			continue
		}
		out = append(out, Review{ID: r.ID, Text: cleaned})
	}
	stats.Kept = len(out)
	return out, stats
}
