package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"reviewlens/internal/checkpoint"
	"reviewlens/internal/labels"
	"reviewlens/internal/logging"
	"reviewlens/internal/results"
	"reviewlens/internal/services"
	"reviewlens/internal/vocabulary"
)

// Run labels items in batches of opts.BatchSize using a bounded pool of
// workers. Results are slotted by batch index, so the outcome is ordered
// by input position regardless of completion order. A failed batch never
// stops the run; it is logged, recorded in diagnostics and left out of the
// labels.
//
// When ctx is canceled no further batches are dispatched; in-flight batches
// finish as canceled failures and undispatched ones stay missing. Run then
// returns the partial outcome together with the context error.
func Run(ctx context.Context, items []Item, opts Options) (*Outcome, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	started := time.Now()
	origin := opts.Processor.Origin()
	spans := Chunk(len(items), opts.BatchSize)

	all := Batch{Items: items}
	out := &Outcome{
		Origin:      origin,
		InputDigest: checkpoint.Digest(all.IDs(), all.Texts()),
		BatchSize:   opts.BatchSize,
		Items:       len(items),
		spans:       spans,
		slots:       make([]*BatchResult, len(spans)),
	}

	if opts.RunID != "" {
		ctx = services.WithRunID(ctx, opts.RunID)
	}
	ctx = services.WithStage(ctx, string(origin))
	r := &runner{
		opts:    opts,
		items:   items,
		out:     out,
		logger:  logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "pipeline")),
		sampler: logging.NewProgressSampler(10),
	}

	r.seed()
	pending := r.pending()
	r.logger.Info("labelling started",
		logging.String("source", string(origin)),
		logging.Int("reviews", len(items)),
		logging.Int("batches", len(spans)),
		logging.Int("pending", len(pending)),
		logging.Int("workers", opts.workers(len(pending))),
	)
	if len(pending) > 0 {
		r.dispatch(ctx, pending)
	}
	r.recordMissing()
	if opts.Checkpoint != nil {
		r.writeCheckpoint()
	}
	out.Elapsed = time.Since(started)

	failed := len(out.Failed())
	attrs := []logging.Attr{
		logging.String("source", string(origin)),
		logging.Int("batches", len(spans)),
		logging.Int("failed_batches", failed),
		logging.Int("labelled", len(out.LabelSources())),
		logging.Duration("elapsed", out.Elapsed),
	}
	if failed > 0 {
		logging.WarnWithContext(r.logger, "labelling finished with failed batches", "pipeline_partial",
			append(attrs,
				logging.String(logging.FieldErrorHint, "inspect the diagnostics log and rerun with resume"),
				logging.String(logging.FieldImpact, "reviews in failed batches are excluded from results"),
			)...)
	} else {
		r.logger.Info("labelling finished", logging.Args(attrs...)...)
	}
	if err := ctx.Err(); err != nil {
		return out, services.Wrap(services.ErrCanceled, "pipeline", "run", "run interrupted", err)
	}
	return out, nil
}

type runner struct {
	opts      Options
	items     []Item
	out       *Outcome
	logger    *slog.Logger
	sampler   *logging.ProgressSampler
	completed int
	finished  int
}

// seed fills slots from a matching resume snapshot.
func (r *runner) seed() {
	snap := r.opts.Resume
	if snap == nil {
		return
	}
	if !snap.Matches(string(r.out.Origin), r.out.InputDigest, r.out.BatchSize, len(r.out.spans)) {
		logging.WarnWithContext(r.logger, "checkpoint does not match input", "checkpoint_mismatch",
			logging.String("run_id", snap.RunID),
			logging.String(logging.FieldErrorHint, "input, source or batch size changed since the checkpoint"),
			logging.String(logging.FieldImpact, "all batches are labelled again"),
		)
		return
	}
	seeded := 0
	for _, entry := range snap.Succeeded() {
		if entry.Index < 0 || entry.Index >= len(r.out.slots) {
			continue
		}
		sources, err := rebuild(entry.Records)
		if err != nil {
			r.logger.Debug("checkpoint batch not reusable",
				logging.Int("batch", entry.Index),
				logging.Error(err),
			)
			continue
		}
		r.out.slots[entry.Index] = &BatchResult{
			Span:     r.out.spans[entry.Index],
			Status:   StatusOK,
			Attempts: entry.Attempts,
			Resumed:  true,
			Sources:  sources,
		}
		r.finished++
		seeded++
	}
	r.logger.Info("resuming from checkpoint",
		logging.String("checkpoint_run_id", snap.RunID),
		logging.Int("reused_batches", seeded),
	)
}

func rebuild(records []results.Record) ([]labels.LabelSource, error) {
	out := make([]labels.LabelSource, 0, len(records))
	for _, rec := range records {
		src, err := rec.Source()
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

func (r *runner) pending() []int {
	var out []int
	for i, slot := range r.out.slots {
		if slot == nil {
			out = append(out, i)
		}
	}
	return out
}

// dispatch feeds pending batches to the workers and collects their results
// on the calling goroutine, which is the only writer of the slot array.
func (r *runner) dispatch(ctx context.Context, pending []int) {
	jobs := make(chan Span)
	done := make(chan BatchResult)

	go func() {
		defer close(jobs)
		for _, idx := range pending {
			select {
			case <-ctx.Done():
				return
			case jobs <- r.out.spans[idx]:
			}
		}
	}()

	var wg sync.WaitGroup
	for range r.opts.workers(len(pending)) {
		wg.Go(func() {
			for span := range jobs {
				done <- r.execute(ctx, span)
			}
		})
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	for res := range done {
		r.collect(res)
	}
}

// execute runs one batch with retries and never panics.
func (r *runner) execute(ctx context.Context, span Span) BatchResult {
	batch := Batch{Span: span, Items: r.items[span.Start:span.End]}
	ctx = services.WithBatchIndex(ctx, span.Index)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	res := BatchResult{Span: span}
	began := time.Now()
	policy := r.opts.Retry
	var lastErr error
	for attempt := 1; attempt <= policy.attempts(); attempt++ {
		res.Attempts = attempt
		if err := ctx.Err(); err != nil {
			lastErr = services.Wrap(services.ErrCanceled, "pipeline", "batch", "run canceled before call", err)
			break
		}
		output, err := r.attempt(ctx, batch)
		if err == nil {
			res.Status = StatusOK
			res.Sources = output.Sources
			res.Issues = output.Issues
			lastErr = nil
			break
		}
		lastErr = err
		if attempt == policy.attempts() || !services.Retryable(err) {
			break
		}
		wait := policy.delay(attempt, err)
		logger.Debug("retrying batch",
			logging.Int("attempt", attempt),
			logging.Duration("backoff", wait),
			logging.Error(err),
		)
		if serr := policy.sleep(ctx, wait); serr != nil {
			lastErr = services.Wrap(services.ErrCanceled, "pipeline", "batch", "canceled during backoff", errors.Join(err, serr))
			break
		}
	}
	if res.Status != StatusOK {
		res.Status = StatusFailed
		res.Missing = true
		res.Err = lastErr
		res.Reason = services.FailureReason(lastErr)
		res.Sources = nil
		res.Issues = nil
	}
	if res.Sources == nil {
		res.Sources = []labels.LabelSource{}
	}
	res.Duration = time.Since(began)
	return res
}

type reply struct {
	output Output
	err    error
}

// attempt makes one bounded processor call. A reply arriving within the
// grace period after the deadline is used as is; a processor still running
// after that is abandoned and its late reply discarded.
func (r *runner) attempt(ctx context.Context, batch Batch) (Output, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.opts.callTimeout())
	defer cancel()

	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- reply{err: services.Wrap(services.ErrWorkerPanic, "pipeline", "batch",
					fmt.Sprintf("processor panicked on batch %d: %v", batch.Index, rec), nil)}
			}
		}()
		output, err := r.opts.Processor.Process(callCtx, batch)
		ch <- reply{output: output, err: err}
	}()

	select {
	case rep := <-ch:
		return rep.output, rep.err
	case <-callCtx.Done():
	}

	grace := time.NewTimer(stuckGrace)
	defer grace.Stop()
	select {
	case rep := <-ch:
		return rep.output, rep.err
	case <-grace.C:
		return Output{}, markCallError(errors.New("processor did not return after cancellation"), callCtx)
	}
}

func markCallError(err error, callCtx context.Context) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "pipeline", "batch", "call timed out", err)
	}
	return services.Wrap(services.ErrCanceled, "pipeline", "batch", "call canceled", err)
}

// collect stores a finished batch and performs the per-completion side
// effects. It runs on a single goroutine.
func (r *runner) collect(res BatchResult) {
	r.out.slots[res.Index] = &res
	r.completed++
	r.finished++

	logger := r.logger.With(logging.Int(logging.FieldBatchIndex, res.Index))
	if res.OK() {
		logger.Debug("batch complete",
			logging.Int("reviews", res.Len()),
			logging.Int("labelled", len(res.Sources)),
			logging.Int("attempts", res.Attempts),
			logging.Duration("duration", res.Duration),
		)
	} else {
		r.recordFailure(logger, res)
	}
	for _, issue := range res.Issues {
		r.record(results.Entry{
			Kind:       issue.Kind,
			BatchIndex: res.Index,
			ReviewID:   issue.ReviewID,
			Detail:     issue.Detail,
			Raw:        issue.Raw,
		})
	}

	total := len(r.out.slots)
	if r.sampler.Due(r.finished, total) {
		r.logger.Info("labelling progress",
			logging.Int("done", r.finished),
			logging.Int("total", total),
		)
	}
	if r.opts.OnBatch != nil {
		r.opts.OnBatch(res)
	}
	if r.opts.Checkpoint != nil && r.opts.CheckpointEvery > 0 && r.completed%r.opts.CheckpointEvery == 0 {
		r.writeCheckpoint()
	}
}

func (r *runner) recordFailure(logger *slog.Logger, res BatchResult) {
	detail := ""
	if res.Err != nil {
		detail = res.Err.Error()
	}
	logging.WarnWithContext(logger, "batch failed", "batch_failed",
		logging.String("reason", res.Reason),
		logging.Int("first_review", res.Start),
		logging.Int("reviews", res.Len()),
		logging.Int("attempts", res.Attempts),
		logging.Error(res.Err),
		logging.String(logging.FieldErrorHint, "check the remote service and rerun with resume"),
		logging.String(logging.FieldImpact, "reviews in this batch are excluded from results"),
	)
	entry := results.Entry{
		Kind:       results.KindBatchFailed,
		BatchIndex: res.Index,
		Reason:     res.Reason,
		Detail:     detail,
		Attempts:   res.Attempts,
	}
	var perr *vocabulary.ParseError
	if errors.As(res.Err, &perr) {
		entry.Kind = results.KindParseError
		entry.Raw = perr.Raw
	}
	r.record(entry)
}

// recordMissing logs every slot that was never filled.
func (r *runner) recordMissing() {
	for i, slot := range r.out.slots {
		if slot != nil {
			continue
		}
		span := r.out.spans[i]
		logging.WarnWithContext(r.logger, "batch result missing", "batch_missing",
			logging.Int(logging.FieldBatchIndex, i),
			logging.Int("first_review", span.Start),
			logging.Int("reviews", span.Len()),
			logging.String(logging.FieldImpact, "reviews in this batch are excluded from results"),
		)
		r.record(results.Entry{
			Kind:       results.KindMissingBatch,
			BatchIndex: i,
			Reason:     services.ReasonMissingResult,
		})
	}
}

func (r *runner) record(entry results.Entry) {
	if err := r.opts.Diagnostics.Record(entry); err != nil {
		logging.WarnWithContext(r.logger, "diagnostic write failed", "diagnostics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "diagnostic entry lost"),
		)
	}
}

// writeCheckpoint persists every filled slot. Write failures are logged and
// do not stop the run.
func (r *runner) writeCheckpoint() {
	snap := checkpoint.Snapshot{
		Version:     checkpoint.Version,
		RunID:       r.opts.RunID,
		Source:      string(r.out.Origin),
		InputDigest: r.out.InputDigest,
		BatchSize:   r.out.BatchSize,
		BatchCount:  len(r.out.spans),
	}
	for _, slot := range r.out.slots {
		if slot == nil {
			continue
		}
		entry := checkpoint.BatchEntry{
			Index:    slot.Index,
			Start:    slot.Start,
			End:      slot.End,
			Status:   checkpoint.StatusFailed,
			Reason:   slot.Reason,
			Attempts: slot.Attempts,
		}
		if slot.OK() {
			entry.Status = checkpoint.StatusOK
			entry.Records = make([]results.Record, 0, len(slot.Sources))
			for _, src := range slot.Sources {
				entry.Records = append(entry.Records, results.FromSource(src))
			}
		}
		snap.Batches = append(snap.Batches, entry)
	}
	if err := r.opts.Checkpoint.Write(snap); err != nil {
		logging.WarnWithContext(r.logger, "checkpoint write failed", "checkpoint_write_failed",
			logging.String("path", r.opts.Checkpoint.Path()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "an interrupted run cannot resume from this point"),
		)
	}
}
