package logging

// ProgressSampler thins per-batch progress lines down to one each time the
// completed share crosses a step boundary.
type ProgressSampler struct {
	step int
	last int
}

// NewProgressSampler emits at most once per step percent. Steps outside
// 1..100 fall back to 10.
func NewProgressSampler(step int) *ProgressSampler {
	if step < 1 || step > 100 {
		step = 10
	}
	return &ProgressSampler{step: step, last: -1}
}

// Due reports whether done of total should be logged. The first call and the
// call that reaches total are always due. A nil sampler logs everything.
func (s *ProgressSampler) Due(done, total int) bool {
	if s == nil || total <= 0 {
		return true
	}
	done = min(max(done, 0), total)
	bucket := done * 100 / total / s.step
	if done == total {
		bucket = 100/s.step + 1
	}
	if bucket <= s.last {
		return false
	}
	s.last = bucket
	return true
}
