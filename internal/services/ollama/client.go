// Package ollama wraps the local Ollama chat API used to write review
// summaries.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reviewlens/internal/services"
)

const (
	defaultBaseURL     = "http://localhost:11434"
	defaultModel       = "otel-ozet"
	defaultHTTPTimeout = 120 * time.Second
	healthTimeout      = 5 * time.Second
)

// Options are the sampling parameters forwarded to the model.
type Options struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

// DefaultOptions mirrors the sampling used for hotel summaries.
func DefaultOptions() Options {
	return Options{Temperature: 0.7, TopP: 0.9, NumPredict: 1024, RepeatPenalty: 1.08}
}

// Config captures the Ollama endpoint settings.
type Config struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
	Options        Options
}

// Client talks to an Ollama server.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs an Ollama client. Zero-valued options fall back to
// DefaultOptions.
func NewClient(cfg Config) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Options == (Options{}) {
		cfg.Options = DefaultOptions()
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// HealthCheck verifies the server answers GET /api/tags.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "api", "tags")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "ollama", "health", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "ollama", "health", "new request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError("health", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrRemoteStatus, "ollama", "health", "", &services.StatusError{StatusCode: resp.StatusCode})
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  Options       `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
}

// Chat sends a non-streaming chat request and returns the trimmed reply.
func (c *Client) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "api", "chat")
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "chat", "build url", err)
	}
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:  false,
		Options: c.cfg.Options,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "ollama", "chat", "encode body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "chat", "new request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError("chat", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("chat", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrRemoteStatus, "ollama", "chat", "", &services.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrDecode, "ollama", "chat", "decode response", err)
	}
	if parsed.Error != "" {
		return "", services.Wrap(services.ErrRemoteStatus, "ollama", "chat", parsed.Error, nil)
	}
	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", services.Wrap(services.ErrDecode, "ollama", "chat", "empty reply", nil)
	}
	return content, nil
}

func transportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "ollama", op, "request timed out", err)
	}
	return services.Wrap(services.ErrTransport, "ollama", op, "request failed", err)
}
