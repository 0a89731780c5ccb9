package pipeline

// Span is one batch's half-open range [Start, End) over the input items.
type Span struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of items in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Chunk splits n items into ceil(n/size) consecutive spans. It returns nil
// when n or size is not positive.
func Chunk(n, size int) []Span {
	if n <= 0 || size <= 0 {
		return nil
	}
	spans := make([]Span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		spans = append(spans, Span{Index: len(spans), Start: start, End: end})
	}
	return spans
}
