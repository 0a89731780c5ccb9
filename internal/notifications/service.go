package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reviewlens/internal/config"
)

const userAgent = "reviewlens/0.1.0"

// Service defines the notification surface exposed to the analysis runner.
type Service interface {
	NotifyRunStarted(ctx context.Context, subject, mode string, reviews int) error
	NotifyRunCompleted(ctx context.Context, subject string, reviews, failedBatches int, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, subject string, err error) error
	NotifyBatchCompleted(ctx context.Context, processed, failed int, duration time.Duration) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, subject, mode string, reviews int) error {
	data := payload{
		title:   "reviewlens - Run Started",
		message: fmt.Sprintf("Started %s run for %s with %d reviews", strings.TrimSpace(mode), displaySubject(subject), reviews),
		tags:    []string{"reviewlens", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, subject string, reviews, failedBatches int, duration time.Duration) error {
	durationText := formatDuration(duration)
	data := payload{
		title:   "reviewlens - Run Complete",
		message: fmt.Sprintf("Analysis complete for %s: %d reviews in %s", displaySubject(subject), reviews, durationText),
		tags:    []string{"reviewlens", "run", "completed"},
	}
	if failedBatches > 0 {
		data.title = "reviewlens - Run Complete (with errors)"
		data.message = fmt.Sprintf("Analysis complete for %s: %d reviews, %d failed batches in %s",
			displaySubject(subject), reviews, failedBatches, durationText)
		data.tags = append(data.tags, "warning")
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, subject string, err error) error {
	var builder strings.Builder
	builder.WriteString("Analysis failed for ")
	builder.WriteString(displaySubject(subject))
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "reviewlens - Error",
		message:  builder.String(),
		tags:     []string{"reviewlens", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBatchCompleted(ctx context.Context, processed, failed int, duration time.Duration) error {
	durationText := formatDuration(duration)
	title := "reviewlens - Batch Complete"
	message := fmt.Sprintf("Batch complete: %d subjects analysed in %s", processed, durationText)
	if failed > 0 {
		title = "reviewlens - Batch Complete (with errors)"
		message = fmt.Sprintf("Batch complete: %d succeeded, %d failed in %s", processed, failed, durationText)
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"reviewlens", "batch", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "reviewlens - Test",
		message:  "Notification system test",
		tags:     []string{"reviewlens", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func displaySubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "unnamed input"
	}
	return subject
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	return d.String()
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string, string, int) error { return nil }
func (noopService) NotifyRunCompleted(context.Context, string, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRunFailed(context.Context, string, error) error                { return nil }
func (noopService) NotifyBatchCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
