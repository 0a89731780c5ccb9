package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewlens/internal/config"
	"reviewlens/internal/services"
)

// ErrNotReady marks a fatal setup problem found before dispatch.
var ErrNotReady = fmt.Errorf("%w: not ready", services.ErrConfiguration)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Needs selects the remote collaborators a run will use.
type Needs struct {
	Classifier bool
	Annotator  bool
	Summarizer bool
}

// RunAll executes the checks a run with the given needs depends on.
func RunAll(ctx context.Context, cfg *config.Config, needs Needs) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Checkpoint directory", cfg.Paths.CheckpointDir),
	}
	if needs.Classifier {
		results = append(results, CheckClassifier(ctx, cfg.Classifier.URL))
	}
	if needs.Annotator {
		results = append(results, checkAnnotator(ctx, cfg))
	}
	if needs.Summarizer {
		if res, ok := checkSummarizer(ctx, cfg); ok {
			results = append(results, res)
		}
	}
	return results
}

// Require turns failed results into a single ErrNotReady error.
func Require(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotReady, strings.Join(failed, "; "))
}

// IsNotReady reports whether err came from Require.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady)
}

func checkAnnotator(ctx context.Context, cfg *config.Config) Result {
	if cfg.Annotator.Provider == config.ProviderAnthropic {
		return CheckAPIKey("Annotator (anthropic)", cfg.Annotator.APIKey)
	}
	return CheckLLM(ctx, "Annotator LLM", cfg.AnnotatorLLM())
}

// checkSummarizer returns false when summaries are disabled.
func checkSummarizer(ctx context.Context, cfg *config.Config) (Result, bool) {
	switch cfg.Summarizer.Provider {
	case config.ProviderOllama:
		return CheckOllama(ctx, cfg.Summarizer.URL, cfg.Summarizer.Model), true
	case config.ProviderLLM:
		return CheckLLM(ctx, "Summarizer LLM", cfg.SummarizerLLM()), true
	default:
		return Result{}, false
	}
}
