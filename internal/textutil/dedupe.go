package textutil

import (
	"math"
	"regexp"
	"unicode/utf8"
)

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Words lowercases text with Turkish rules and splits it into words of at
// least three runes. Shorter words carry little signal for duplicate checks.
func Words(text string) []string {
	var out []string
	for _, w := range wordSplit.Split(turkishLower.String(text), -1) {
		if utf8.RuneCountInString(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

// bag is a word-count vector with its Euclidean length cached.
type bag struct {
	counts map[string]float64
	length float64
}

func newBag(text string) (bag, bool) {
	words := Words(text)
	if len(words) == 0 {
		return bag{}, false
	}
	counts := make(map[string]float64, len(words))
	for _, w := range words {
		counts[w]++
	}
	var sq float64
	for _, c := range counts {
		sq += c * c
	}
	return bag{counts: counts, length: math.Sqrt(sq)}, true
}

func (b bag) cosine(o bag) float64 {
	small, large := b, o
	if len(large.counts) < len(small.counts) {
		small, large = large, small
	}
	var dot float64
	for w, c := range small.counts {
		dot += c * large.counts[w]
	}
	if dot == 0 {
		return 0
	}
	return dot / (b.length * o.length)
}

// Similarity returns the cosine similarity of the word counts of a and b,
// 0 when either has no usable words.
func Similarity(a, b string) float64 {
	x, okx := newBag(a)
	y, oky := newBag(b)
	if !okx || !oky {
		return 0
	}
	return x.cosine(y)
}

// DuplicateIndex remembers accepted texts and flags later texts whose
// similarity to any of them reaches the threshold. It is not safe for
// concurrent use.
type DuplicateIndex struct {
	threshold float64
	kept      []bag
}

// NewDuplicateIndex builds an index; a threshold of 0 or less disables it.
func NewDuplicateIndex(threshold float64) *DuplicateIndex {
	return &DuplicateIndex{threshold: threshold}
}

// Check reports whether text duplicates an earlier accepted text. Texts that
// are not duplicates are accepted and compared against from then on.
func (d *DuplicateIndex) Check(text string) bool {
	if d == nil || d.threshold <= 0 {
		return false
	}
	b, ok := newBag(text)
	if !ok {
		return false
	}
	for _, other := range d.kept {
		if b.cosine(other) >= d.threshold {
			return true
		}
	}
	d.kept = append(d.kept, b)
	return false
}
