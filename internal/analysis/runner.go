package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"reviewlens/internal/aggregate"
	"reviewlens/internal/checkpoint"
	"reviewlens/internal/config"
	"reviewlens/internal/history"
	"reviewlens/internal/labels"
	"reviewlens/internal/logging"
	"reviewlens/internal/notifications"
	"reviewlens/internal/pipeline"
	"reviewlens/internal/preflight"
	"reviewlens/internal/results"
	"reviewlens/internal/reviews"
	"reviewlens/internal/services"
	"reviewlens/internal/summarizer"
)

// Request describes one subject to analyse.
type Request struct {
	Subject string
	// InputPath is read with reviews.LoadFile unless Reviews is set.
	InputPath string
	Reviews   []reviews.Review
	Mode      Mode
	// Resume reuses a matching checkpoint from an earlier run.
	Resume    bool
	Summarize bool
}

// ProcessorFactory builds the pipeline processor for a mode.
type ProcessorFactory func(mode Mode) (pipeline.Processor, error)

// PreflightFunc runs readiness checks before dispatch.
type PreflightFunc func(ctx context.Context, needs preflight.Needs) []preflight.Result

// Runner executes analysis requests.
type Runner struct {
	cfg        *config.Config
	base       *slog.Logger
	logger     *slog.Logger
	processors ProcessorFactory
	summarizer *summarizer.Summarizer
	notifier   notifications.Service
	preflight  PreflightFunc
	history    Recorder
	now        func() time.Time
}

// Recorder persists one row per finished run.
type Recorder interface {
	Record(ctx context.Context, run *history.Run) error
}

// Option customizes a Runner.
type Option func(*Runner)

// WithProcessorFactory replaces the configured remote processors.
func WithProcessorFactory(factory ProcessorFactory) Option {
	return func(r *Runner) {
		if factory != nil {
			r.processors = factory
		}
	}
}

// WithSummarizer replaces the configured summarizer.
func WithSummarizer(s *summarizer.Summarizer) Option {
	return func(r *Runner) { r.summarizer = s }
}

// WithNotifier replaces the configured notification service.
func WithNotifier(n notifications.Service) Option {
	return func(r *Runner) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithPreflight replaces the readiness checks.
func WithPreflight(fn PreflightFunc) Option {
	return func(r *Runner) {
		if fn != nil {
			r.preflight = fn
		}
	}
}

// WithHistory records every run, including runs that fail before a report
// exists.
func WithHistory(h Recorder) Option {
	return func(r *Runner) { r.history = h }
}

// WithClock overrides the time source used for file names and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner builds a Runner wired to the services named in cfg.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "new runner", "config is nil", nil)
	}
	table, err := LoadVocabulary(cfg)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "analysis"),
		processors: func(mode Mode) (pipeline.Processor, error) {
			return NewProcessor(cfg, mode, table)
		},
		summarizer: NewSummarizer(cfg),
		notifier:   notifications.NewService(cfg),
		preflight: func(ctx context.Context, needs preflight.Needs) []preflight.Result {
			return preflight.RunAll(ctx, cfg, needs)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run analyses one subject. Setup problems (unreadable input, failed
// preflight) abort before any batch is dispatched. Failed batches do not;
// they are reported in the returned Report. On cancellation the partial
// report is written and returned together with the error.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeClassify
	}
	started := r.now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	if req.Subject != "" {
		ctx = services.WithSubject(ctx, req.Subject)
	}
	logger := logging.WithContext(ctx, r.logger)

	report, err := r.run(ctx, logger, req, mode, runID, started)
	if err != nil && report == nil {
		logging.ErrorWithContext(logger, "analysis failed", "analysis_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check configuration and remote services"),
		)
		if nerr := r.notifier.NotifyRunFailed(ctx, req.Subject, err); nerr != nil {
			logger.Debug("notification failed", logging.Error(nerr))
		}
	}
	r.record(ctx, logger, historyEntry(runID, req, mode, started, r.now(), report, err))
	return report, err
}

// record stores entry when history is enabled. Failures only warn.
func (r *Runner) record(ctx context.Context, logger *slog.Logger, entry *history.Run) {
	if r.history == nil {
		return
	}
	if err := r.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.WarnWithContext(logger, "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run missing from history"),
		)
	}
}

func historyEntry(runID string, req Request, mode Mode, started, finished time.Time, report *Report, err error) *history.Run {
	entry := &history.Run{
		RunID:      runID,
		Subject:    req.Subject,
		Mode:       string(mode),
		Status:     StatusFailed,
		InputPath:  req.InputPath,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}
	if report == nil {
		return entry
	}
	entry.Status = report.Status
	entry.ReviewCount = report.ReviewCount
	entry.DroppedCount = report.DroppedCount
	entry.LabelledCount = report.LabelledCount
	entry.FailedBatches = len(report.FailedBatches)
	entry.ResultsPath = report.ResultsPath
	entry.ReportPath = report.Path
	return entry
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger, req Request, mode Mode, runID string, started time.Time) (*Report, error) {
	raw := req.Reviews
	if raw == nil {
		loaded, err := reviews.LoadFile(req.InputPath)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "analysis", "load reviews", req.InputPath, err)
		}
		raw = loaded
	}
	prepared, stats := reviews.Prepare(raw, reviews.PrepareOptions{
		MinLength:          r.cfg.Pipeline.MinReviewLength,
		DuplicateThreshold: r.cfg.Pipeline.DuplicateThreshold,
	})
	logger.Info("reviews prepared",
		logging.Int("input", stats.Input),
		logging.Int("kept", stats.Kept),
		logging.Int("too_short", stats.TooShort),
		logging.Int("duplicates", stats.Duplicates),
	)

	summarize := req.Summarize && r.summarizer.Enabled()
	needs := preflight.Needs{
		Classifier: mode == ModeClassify,
		Annotator:  mode == ModeAnnotate,
		Summarizer: summarize,
	}
	if err := preflight.Require(r.preflight(ctx, needs)); err != nil {
		return nil, err
	}
	processor, err := r.processors(mode)
	if err != nil {
		return nil, err
	}

	stem := fileStem(req.Subject)
	stamp := timestamp(started)
	outDir := r.cfg.Paths.OutputDir
	diag, err := results.OpenDiagnostics(filepath.Join(outDir, fmt.Sprintf("%s_%s_%s.diagnostics.jsonl", stem, mode, stamp)), runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := diag.Close(); cerr != nil {
			logger.Warn("close diagnostics failed", logging.Error(cerr))
		}
	}()
	recordDropped(diag, stats)

	cpPath := filepath.Join(r.cfg.Paths.CheckpointDir, fmt.Sprintf("%s_%s.checkpoint.json", stem, mode))
	var resume *checkpoint.Snapshot
	if req.Resume {
		resume = r.loadCheckpoint(logger, cpPath)
	}

	if nerr := r.notifier.NotifyRunStarted(ctx, req.Subject, string(mode), len(prepared)); nerr != nil {
		logger.Debug("notification failed", logging.Error(nerr))
	}

	items := make([]pipeline.Item, len(prepared))
	for i, rv := range prepared {
		items[i] = pipeline.Item{ID: rv.ID, Text: rv.Text}
	}
	outcome, runErr := pipeline.Run(ctx, items, pipeline.Options{
		Processor:       processor,
		BatchSize:       batchSize(r.cfg, mode),
		Workers:         r.cfg.Pipeline.Workers,
		CallTimeout:     time.Duration(r.cfg.Pipeline.CallTimeoutSeconds) * time.Second,
		Retry:           pipelineRetry(r.cfg),
		Checkpoint:      checkpoint.NewWriter(cpPath),
		CheckpointEvery: r.cfg.Pipeline.CheckpointEvery,
		Resume:          resume,
		RunID:           runID,
		Diagnostics:     diag,
		Logger:          r.base,
	})
	if outcome == nil {
		return nil, runErr
	}

	resultsPath := filepath.Join(outDir, fmt.Sprintf("%s_%s_%s%s", stem, mode, stamp, r.cfg.OutputExtension()))
	if err := writeResults(resultsPath, r.cfg.Pipeline.OutputFormat, outcome); err != nil {
		return nil, err
	}

	sources := outcome.LabelSources()
	report := &Report{
		Subject:         req.Subject,
		RunID:           runID,
		Mode:            mode,
		Status:          StatusSuccess,
		ReviewCount:     len(prepared),
		DroppedCount:    stats.Dropped(),
		LabelledCount:   len(sources),
		FailedBatches:   failedBatches(outcome),
		ResultsPath:     resultsPath,
		DiagnosticsPath: diag.Path(),
		CheckpointPath:  cpPath,
		StartedAt:       started,
	}
	if len(report.FailedBatches) > 0 {
		report.Status = StatusPartial
	}
	if runErr != nil {
		report.Status = StatusCanceled
	}
	r.finish(ctx, logger, report, sources, summarize && runErr == nil)

	if runErr != nil {
		return report, runErr
	}
	if nerr := r.notifier.NotifyRunCompleted(ctx, req.Subject, report.ReviewCount, len(report.FailedBatches), r.now().Sub(started)); nerr != nil {
		logger.Debug("notification failed", logging.Error(nerr))
	}
	return report, nil
}

// AggregateRequest re-aggregates a results file written by an earlier run.
type AggregateRequest struct {
	Subject     string
	ResultsPath string
	Summarize   bool
}

// Aggregate rebuilds a report from an existing results file without any
// labelling calls.
func (r *Runner) Aggregate(ctx context.Context, req AggregateRequest) (*Report, error) {
	started := r.now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	if req.Subject != "" {
		ctx = services.WithSubject(ctx, req.Subject)
	}
	logger := logging.WithContext(ctx, r.logger)

	sources, err := results.ReadFile(req.ResultsPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "analysis", "read results", req.ResultsPath, err)
	}
	summarize := req.Summarize && r.summarizer.Enabled()
	if summarize {
		if err := preflight.Require(r.preflight(ctx, preflight.Needs{Summarizer: true})); err != nil {
			return nil, err
		}
	}
	report := &Report{
		Subject:       req.Subject,
		RunID:         runID,
		Mode:          modeOf(sources),
		Status:        StatusSuccess,
		ReviewCount:   len(sources),
		LabelledCount: len(sources),
		FailedBatches: []FailedBatch{},
		ResultsPath:   req.ResultsPath,
		StartedAt:     started,
	}
	r.finish(ctx, logger, report, sources, summarize)
	return report, nil
}

// finish aggregates, optionally summarizes and writes the report. A
// summarizer failure only drops the prose.
func (r *Runner) finish(ctx context.Context, logger *slog.Logger, report *Report, sources []labels.LabelSource, summarize bool) {
	report.Summaries = aggregate.Summarize(sources)
	report.AspectSummary = aggregate.Table(report.Summaries)
	report.AspectText = aggregate.Render(report.Summaries)

	if summarize {
		result, err := r.summarizer.Summarize(ctx, report.Subject, report.Summaries)
		switch {
		case errors.Is(err, summarizer.ErrNothingToSummarize):
			logger.Info("no aspect mentions to summarize")
		case err != nil:
			logging.WarnWithContext(logger, "summary generation failed", "summary_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the summarizer service"),
				logging.String(logging.FieldImpact, "report written without prose summary"),
			)
		default:
			report.Summary = result.Summary
			report.SummaryBackend = result.Backend
		}
	}

	report.Elapsed = r.now().Sub(report.StartedAt).Round(time.Millisecond).String()
	path, err := writeReport(r.cfg.Paths.OutputDir, report)
	if err != nil {
		logging.WarnWithContext(logger, "report write failed", "report_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "analysis report not persisted"),
		)
		return
	}
	report.Path = path
	logger.Info("analysis report written",
		logging.String("path", path),
		logging.String("status", report.Status),
		logging.Int("reviews", report.ReviewCount),
		logging.Int("labelled", report.LabelledCount),
		logging.Int("failed_batches", len(report.FailedBatches)),
	)
}

func (r *Runner) loadCheckpoint(logger *slog.Logger, path string) *checkpoint.Snapshot {
	snap, err := checkpoint.Load(path)
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		logger.Info("no checkpoint to resume from", logging.String("path", path))
		return nil
	case err != nil:
		logging.WarnWithContext(logger, "checkpoint unreadable", "checkpoint_unreadable",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "all batches are labelled again"),
		)
		return nil
	}
	return snap
}

// writeResults appends one record per labelled review, batch by batch in
// ascending index order.
func writeResults(path, format string, outcome *pipeline.Outcome) error {
	f, err := results.ParseFormat(format)
	if err != nil {
		return err
	}
	w, err := results.Create(path, f)
	if err != nil {
		return err
	}
	for _, batch := range outcome.Assembled() {
		if !batch.OK() {
			continue
		}
		for _, src := range batch.Sources {
			if err := w.Append(results.FromSource(src)); err != nil {
				_ = w.Close()
				return err
			}
		}
	}
	return w.Close()
}

func recordDropped(diag *results.Diagnostics, stats reviews.PrepareStats) {
	for _, id := range stats.TooShortIDs {
		_ = diag.Record(results.Entry{Kind: results.KindPrepareDropped, BatchIndex: -1, ReviewID: id, Reason: "too_short"})
	}
	for _, id := range stats.DuplicateIDs {
		_ = diag.Record(results.Entry{Kind: results.KindPrepareDropped, BatchIndex: -1, ReviewID: id, Reason: "duplicate"})
	}
}

func failedBatches(outcome *pipeline.Outcome) []FailedBatch {
	out := []FailedBatch{}
	for _, b := range outcome.Failed() {
		out = append(out, FailedBatch{
			Index:    b.Index,
			Start:    b.Start,
			End:      b.End,
			Reason:   b.Reason,
			Attempts: b.Attempts,
		})
	}
	return out
}

func modeOf(sources []labels.LabelSource) Mode {
	for _, src := range sources {
		if src.Origin() == labels.OriginAnnotator {
			return ModeAnnotate
		}
	}
	return ModeClassify
}

// Tally carries progress across a multi-subject run. Processing stops once
// WithReviews reaches Target; a zero Target processes every request.
type Tally struct {
	Target      int `json:"target"`
	Processed   int `json:"processed"`
	WithReviews int `json:"with_reviews"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
}

// Reached reports whether the target has been met.
func (t Tally) Reached() bool {
	return t.Target > 0 && t.WithReviews >= t.Target
}

// RunMany analyses requests in order until the tally target is reached or
// ctx is canceled. Per-subject failures are counted and skipped; a failed
// preflight stops the whole batch since every later subject would fail the
// same way.
func (r *Runner) RunMany(ctx context.Context, reqs []Request, tally Tally) (Tally, []*Report, error) {
	started := r.now()
	var reports []*Report
	var stopErr error
	for i, req := range reqs {
		if tally.Reached() {
			tally.Skipped += len(reqs) - i
			r.logger.Info("target reached", logging.Int("target", tally.Target), logging.Int("with_reviews", tally.WithReviews))
			break
		}
		if err := ctx.Err(); err != nil {
			stopErr = services.Wrap(services.ErrCanceled, "analysis", "run many", "interrupted", err)
			break
		}
		report, err := r.Run(ctx, req)
		if report != nil {
			reports = append(reports, report)
		}
		tally.Processed++
		if err != nil {
			tally.Failed++
			if preflight.IsNotReady(err) || errors.Is(err, services.ErrCanceled) {
				stopErr = err
				break
			}
			continue
		}
		if report.LabelledCount > 0 {
			tally.WithReviews++
		}
	}
	if nerr := r.notifier.NotifyBatchCompleted(ctx, tally.Processed-tally.Failed, tally.Failed, r.now().Sub(started)); nerr != nil {
		r.logger.Debug("notification failed", logging.Error(nerr))
	}
	return tally, reports, stopErr
}

// SubjectFromPath derives a subject name from an input file name.
func SubjectFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SupportedInput reports whether path has an extension reviews.LoadFile reads.
func SupportedInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson", ".json", ".csv", ".txt":
		return true
	default:
		return false
	}
}
