package pipeline

import (
	"context"
	"log/slog"
	"time"

	"reviewlens/internal/checkpoint"
	"reviewlens/internal/results"
	"reviewlens/internal/services"
)

const (
	defaultWorkers     = 8
	defaultCallTimeout = 120 * time.Second
)

// stuckGrace is how long a worker waits past the call timeout for a
// processor that ignores cancellation before abandoning it.
var stuckGrace = 5 * time.Second

// RetryPolicy controls repeated attempts of a failed batch. MaxAttempts of 1
// (the default) disables retries. Only errors services.Retryable accepts are
// retried.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Sleep waits between attempts; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// delay returns the exponential backoff before attempt (1-based) + 1,
// honouring a server supplied Retry-After when present.
func (p RetryPolicy) delay(attempt int, err error) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	return services.Backoff(attempt, base, p.MaxDelay, err)
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Options configure one pipeline run.
type Options struct {
	Processor Processor
	BatchSize int
	Workers   int
	// CallTimeout bounds each remote call attempt.
	CallTimeout time.Duration
	Retry       RetryPolicy

	// Checkpoint, when set, receives a full snapshot every CheckpointEvery
	// completed batches and once more when the run ends.
	Checkpoint      *checkpoint.Writer
	CheckpointEvery int
	// Resume seeds the run with the successful batches of a previous
	// snapshot taken over the same input and batch size.
	Resume *checkpoint.Snapshot

	RunID       string
	Diagnostics *results.Diagnostics
	Logger      *slog.Logger
	// OnBatch is called from the collector after each batch completes.
	OnBatch func(BatchResult)
}

func (o Options) validate() error {
	if o.Processor == nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "run", "no processor configured", nil)
	}
	if o.BatchSize <= 0 {
		return services.Wrap(services.ErrConfiguration, "pipeline", "run", "batch size must be positive", nil)
	}
	return nil
}

func (o Options) workers(batches int) int {
	w := o.Workers
	if w <= 0 {
		w = defaultWorkers
	}
	return max(1, min(w, batches))
}

func (o Options) callTimeout() time.Duration {
	if o.CallTimeout <= 0 {
		return defaultCallTimeout
	}
	return o.CallTimeout
}
