package preflight

import (
	"context"

	"reviewlens/internal/config"
)

// Status evaluates every configured collaborator for the status command.
// Disabled services are reported as passed with a "Disabled" detail.
func Status(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := RunAll(ctx, cfg, Needs{Classifier: true, Annotator: true})
	summary, ok := checkSummarizer(ctx, cfg)
	if !ok {
		summary = Result{Name: "Summarizer", Passed: true, Detail: "Disabled"}
	}
	results = append(results, summary)
	results = append(results, notificationStatus(cfg))
	return results
}

func notificationStatus(cfg *config.Config) Result {
	const name = "Notifications"
	if cfg.Notifications.NtfyTopic == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return Result{Name: name, Passed: true, Detail: cfg.Notifications.NtfyTopic}
}
