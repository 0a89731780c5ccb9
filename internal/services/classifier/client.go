// Package classifier talks to the fine-tuned review classification service.
//
// The service answers POST /predict_batch {"texts": [...]} with one vector of
// 25 packed class ids per input text, and GET /health with any 2xx status.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reviewlens/internal/services"
)

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 120 * time.Second
	healthTimeout      = 5 * time.Second
	// maxResponseBytes bounds a predict_batch body; a full batch of vectors
	// is a few kilobytes.
	maxResponseBytes = 4 << 20
)

// Config captures the classifier endpoint settings.
type Config struct {
	BaseURL        string
	TimeoutSeconds int
}

// Client wraps the classification service HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a classifier client.
func NewClient(cfg Config) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	return client
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthCheck verifies the service answers GET /health.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	endpoint, err := url.JoinPath(c.baseURL, "health")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "classifier", "health", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "classifier", "health", "new request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError("health", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrRemoteStatus, "classifier", "health", "", &services.StatusError{StatusCode: resp.StatusCode})
	}
	return nil
}

type predictRequest struct {
	Texts []string `json:"texts"`
}

// PredictBatch returns one class-id vector per input text, in input order.
// A response whose length differs from the input is a decode failure.
func (c *Client) PredictBatch(ctx context.Context, texts []string) ([][]int, error) {
	if len(texts) == 0 {
		return nil, services.Wrap(services.ErrValidation, "classifier", "predict_batch", "no texts", nil)
	}
	endpoint, err := url.JoinPath(c.baseURL, "predict_batch")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classifier", "predict_batch", "build url", err)
	}
	encoded, err := json.Marshal(predictRequest{Texts: texts})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "classifier", "predict_batch", "encode body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classifier", "predict_batch", "new request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError("predict_batch", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, transportError("predict_batch", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrRemoteStatus, "classifier", "predict_batch", "", &services.StatusError{
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
			RetryAfter: services.ParseRetryAfter(resp.Header.Get("Retry-After")),
		})
	}
	if len(body) > maxResponseBytes {
		return nil, services.Wrap(services.ErrDecode, "classifier", "predict_batch",
			fmt.Sprintf("response exceeds %d bytes", maxResponseBytes), nil)
	}
	var vectors [][]int
	if err := json.Unmarshal(body, &vectors); err != nil {
		return nil, services.Wrap(services.ErrDecode, "classifier", "predict_batch", "decode response", err)
	}
	if len(vectors) != len(texts) {
		return nil, services.Wrap(services.ErrDecode, "classifier", "predict_batch",
			fmt.Sprintf("response has %d vectors for %d texts", len(vectors), len(texts)), nil)
	}
	return vectors, nil
}

func transportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "classifier", op, "request timed out", err)
	}
	return services.Wrap(services.ErrTransport, "classifier", op, "request failed", err)
}

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	const limit = 160
	if runes := []rune(text); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
